package job

import (
	"encoding/json"
	"errors"
	"time"
)

var ErrNotFound = errors.New("job not found")

type Type string

const (
	TypeHybrid   Type = "hybrid"
	TypeRemote   Type = "remote"
	TypeOffice   Type = "office"
	TypeFullTime Type = "full-time"
)

var Types = []Type{TypeHybrid, TypeRemote, TypeOffice, TypeFullTime}

func (t Type) Valid() bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

type Currency string

const (
	CurrencyKZT Currency = "KZT"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

var Currencies = []Currency{CurrencyKZT, CurrencyUSD, CurrencyEUR}

func (c Currency) Valid() bool {
	for _, v := range Currencies {
		if v == c {
			return true
		}
	}
	return false
}

// MaxSalary is the largest value NUMERIC(10,2) can hold.
const MaxSalary = 99999999.99

type Job struct {
	ID          int64
	Title       string
	Company     string
	Location    string
	Type        Type
	Description string
	Salary      *float64
	Currency    Currency
	Metadata    json.RawMessage
	// Logo is an object storage key.
	Logo      *string
	CreatedAt time.Time
}
