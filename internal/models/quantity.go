package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Quantity is a free-form amount such as "2 cups". Clients and the language
// model both send bare numbers at times, so numbers are accepted as well.
type Quantity string

func (q *Quantity) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*q = ""
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*q = Quantity(str)
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*q = Quantity(strconv.FormatFloat(num, 'f', -1, 64))
		return nil
	}

	return fmt.Errorf("invalid quantity %s", data)
}

func (q Quantity) String() string {
	return string(q)
}
