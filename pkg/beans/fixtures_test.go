package beans

import (
	"errors"
	"strings"
	"time"
)

type Address struct {
	Street string
	City   string
	Zip    int
	Floor  int
}

type Employee struct {
	Name    string
	Age     int
	Boss    *Employee
	Home    Address
	Work    *Address
	Tags    []string
	Timeout time.Duration
	Salary  float64 `bean:"pay"`
	Ignored string  `bean:"-"`
	ID      string  `bean:"id,readonly"`

	secret   string
	nickname string
	badge    int
	office   Address
}

func (e *Employee) Nickname() string     { return e.nickname }
func (e *Employee) SetNickname(n string) { e.nickname = n }

func (e *Employee) GetInitials() string {
	var b strings.Builder
	for _, part := range strings.Fields(e.Name) {
		b.WriteByte(part[0])
	}
	return b.String()
}

func (e *Employee) SetBadge(b int) error {
	if b < 0 {
		return errors.New("negative badge")
	}
	e.badge = b
	return nil
}

func (e *Employee) GetOffice() Address { return e.office }

func (e *Employee) GetFlaky() (string, error) { return "", errors.New("flaky backend") }

func (e *Employee) SetPanicky(string) { panic("boom") }

type Base struct {
	Created string
}

type Document struct {
	Base
	Title string
}

type Annotated struct {
	*Base
	Note string
}
