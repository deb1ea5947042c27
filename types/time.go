// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp is a point in time with millisecond precision, counted from the Unix epoch
type Timestamp uint64

// MaxTimestamp is 9999-12-31T23:59:59.999Z, the last instant RFC3339 can represent
const MaxTimestamp Timestamp = 253402300799999

// NewTimestamp converts t to a Timestamp. Times before the Unix epoch are rejected
func NewTimestamp(t time.Time) (Timestamp, error) {
	ms := t.UnixMilli()
	if ms < 0 {
		return 0, fmt.Errorf("timestamp %s is before the Unix epoch", t)
	}
	if ms > int64(MaxTimestamp) {
		return 0, fmt.Errorf("timestamp %s is after %s", t, MaxTimestamp)
	}
	return Timestamp(ms), nil
}

// ParseTimestamp parses an RFC3339 string
func ParseTimestamp(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return NewTimestamp(t)
}

func (t Timestamp) Time() time.Time {
	return time.UnixMilli(int64(t)).UTC()
}

// String returns the RFC3339 representation in UTC
func (t Timestamp) String() string {
	return t.Time().Format(time.RFC3339Nano)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	ts, err := ParseTimestamp(tmp)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// Duration is a length of time in milliseconds
type Duration uint64

var durationUnits = []struct {
	suffix string
	ms     uint64
}{
	{"d", 24 * 60 * 60 * 1000},
	{"h", 60 * 60 * 1000},
	{"m", 60 * 1000},
	{"s", 1000},
	{"ms", 1},
}

func NewDuration(d time.Duration) (Duration, error) {
	if d < 0 {
		return 0, errors.New("duration cannot be negative")
	}
	return Duration(d.Milliseconds()), nil
}

// ParseDuration parses a whitespace separated list of measures such as "1d 2h 30m 5s 10ms"
func ParseDuration(s string) (Duration, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return 0, errors.New("empty duration")
	}
	var total uint64
	for _, field := range fields {
		var unitMs uint64
		var digits string
		// "ms" has to be checked before "m" and "s"
		switch {
		case strings.HasSuffix(field, "ms"):
			digits, unitMs = strings.TrimSuffix(field, "ms"), 1
		default:
			for _, unit := range durationUnits[:4] {
				if strings.HasSuffix(field, unit.suffix) {
					digits, unitMs = strings.TrimSuffix(field, unit.suffix), unit.ms
					break
				}
			}
		}
		if unitMs == 0 {
			return 0, fmt.Errorf("invalid duration measure %q: missing unit", field)
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration measure %q: %w", field, err)
		}
		part := n * unitMs
		if part/unitMs != n || total+part < total {
			return 0, fmt.Errorf("duration %q overflows", s)
		}
		total += part
	}
	return Duration(total), nil
}

func (d Duration) Milliseconds() uint64 {
	return uint64(d)
}

// String returns the measures form, e.g. "1d 2h 30m"
func (d Duration) String() string {
	remaining := uint64(d)
	if remaining == 0 {
		return "0ms"
	}
	parts := make([]string, 0, len(durationUnits))
	for _, unit := range durationUnits {
		if n := remaining / unit.ms; n > 0 {
			parts = append(parts, strconv.FormatUint(n, 10)+unit.suffix)
			remaining %= unit.ms
		}
	}
	return strings.Join(parts, " ")
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var tmp string
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	parsed, err := ParseDuration(tmp)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TransactionExpiry is the time, in seconds since the Unix epoch, after which a
// transaction can no longer be included in a block
type TransactionExpiry uint64

func NewTransactionExpiry(t time.Time) TransactionExpiry {
	secs := t.Unix()
	if secs < 0 {
		return 0
	}
	return TransactionExpiry(secs)
}

// TransactionExpiryIn returns an expiry d after now
func TransactionExpiryIn(d time.Duration) TransactionExpiry {
	return NewTransactionExpiry(time.Now().Add(d))
}

func (e TransactionExpiry) Time() time.Time {
	return time.Unix(int64(e), 0).UTC()
}

func (e TransactionExpiry) String() string {
	return e.Time().Format(time.RFC3339)
}
