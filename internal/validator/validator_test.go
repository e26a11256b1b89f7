package validator

import (
	"testing"
)

type moneyProbe struct {
	Amount string `validate:"money"`
}

type dateProbe struct {
	Date string `validate:"spend_date"`
}

type roleProbe struct {
	Role string `validate:"role"`
}

func TestMoneyValidation(t *testing.T) {
	valid := []string{"0.01", "5", "25.50", "99999999.99"}
	for _, amount := range valid {
		if err := Struct(moneyProbe{Amount: amount}); err != nil {
			t.Errorf("expected %q to be a valid amount: %v", amount, err)
		}
	}

	invalid := []string{"", "abc", "0", "-5.00", "1.234", "100000000.00", "1,50"}
	for _, amount := range invalid {
		if err := Struct(moneyProbe{Amount: amount}); err == nil {
			t.Errorf("expected %q to be rejected", amount)
		}
	}
}

func TestSpendDateValidation(t *testing.T) {
	if err := Struct(dateProbe{Date: "2026-03-10"}); err != nil {
		t.Errorf("expected a valid date: %v", err)
	}

	for _, date := range []string{"", "10-03-2026", "2026-13-01", "2026-03-10T00:00:00", "yesterday"} {
		if err := Struct(dateProbe{Date: date}); err == nil {
			t.Errorf("expected %q to be rejected", date)
		}
	}
}

func TestRoleValidation(t *testing.T) {
	for _, role := range []string{"admin", "user"} {
		if err := Struct(roleProbe{Role: role}); err != nil {
			t.Errorf("expected role %q to be valid: %v", role, err)
		}
	}
	for _, role := range []string{"", "root", "Admin"} {
		if err := Struct(roleProbe{Role: role}); err == nil {
			t.Errorf("expected role %q to be rejected", role)
		}
	}
}
