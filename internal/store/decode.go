package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate marks a data file key that is not a YYYY-MM-DD calendar date.
var ErrInvalidDate = errors.New("invalid date key")

// DecodeTaskBoard parses tasks.json. Keys must be valid calendar dates.
func DecodeTaskBoard(data []byte) (TaskBoard, error) {
	var b TaskBoard
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode task board: %w", err)
	}
	for date := range b {
		if err := validateDate(date); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// DecodeRecord parses study.json or sleep.json. Keys must be valid calendar
// dates.
func DecodeRecord(data []byte) (DateValueRecord, error) {
	var r DateValueRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	for date := range r {
		if err := validateDate(date); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func validateDate(key string) error {
	if _, err := time.Parse(DateLayout, key); err != nil {
		return fmt.Errorf("%w %q", ErrInvalidDate, key)
	}
	return nil
}
