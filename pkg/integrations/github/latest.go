package github

import (
	"time"

	"github.com/kenjiO/repo-activity/pkg/errors"
)

// UnexpectedFormatMessage is the message of every response-shape failure.
const UnexpectedFormatMessage = "Data received from Github came in unexpected format"

// LatestDate returns the most recent of dates, verbatim.
//
// Every date must be an RFC 3339 timestamp such as "2017-02-09T16:01:33Z";
// fractional seconds and numeric offsets are compared chronologically. Of
// several dates naming the same instant the first one wins. An empty slice or
// a date that does not parse (including impossible ones like
// "2017-13-45T99:99:99Z") is an UNEXPECTED_FORMAT error.
func LatestDate(dates []string) (string, error) {
	if len(dates) == 0 {
		return "", unexpectedFormat()
	}

	var (
		latest   string
		latestAt time.Time
	)
	for i, d := range dates {
		t, err := time.Parse(time.RFC3339Nano, d)
		if err != nil {
			return "", unexpectedFormat()
		}
		if i == 0 || t.After(latestAt) {
			latest, latestAt = d, t
		}
	}
	return latest, nil
}

func unexpectedFormat() error {
	return errors.New(errors.ErrCodeUnexpectedFormat, UnexpectedFormatMessage)
}
