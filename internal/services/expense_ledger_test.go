package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"spendbook/internal/models"
	"spendbook/internal/testutil"
)

func validExpenseInput() ExpenseInput {
	return ExpenseInput{
		Amount: "10.00",
		Date:   "2024-03-01",
		Note:   "lunch",
	}
}

func TestExpenseAdd(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)

		input := validExpenseInput()
		input.CategoryID = &category.ID
		expense, err := ledger.Add(user.ID, input)
		testutil.AssertNoError(t, err)

		if expense.ID == 0 {
			t.Fatal("expected non-zero expense ID")
		}
		if expense.UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, expense.UserID)
		}
		if !expense.Amount.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("expected amount 10.00, got %s", expense.Amount)
		}
		if expense.SpentOn.Format(models.DateLayout) != "2024-03-01" {
			t.Errorf("expected spent_on 2024-03-01, got %s", expense.SpentOn)
		}
		if expense.CreatedAt.IsZero() {
			t.Error("expected creation timestamp to be assigned")
		}
	})

	t.Run("empty_note_stored_as_null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		input := validExpenseInput()
		input.Note = ""
		expense, err := ledger.Add(user.ID, input)
		testutil.AssertNoError(t, err)
		if expense.Note != nil {
			t.Errorf("expected nil note, got %q", *expense.Note)
		}
	})

	t.Run("unknown_category_stored_as_null", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		bogus := uint(99999)
		input := validExpenseInput()
		input.CategoryID = &bogus
		expense, err := ledger.Add(user.ID, input)
		testutil.AssertNoError(t, err)
		if expense.CategoryID != nil {
			t.Errorf("expected nil category reference, got %d", *expense.CategoryID)
		}
		if got := expense.CategoryName(); got != "Uncategorized" {
			t.Errorf("expected Uncategorized, got %q", got)
		}
	})

	t.Run("rejects_bad_amounts", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		for _, amount := range []string{"", "abc", "0", "-5.00", "1.234", "100000000.00"} {
			input := validExpenseInput()
			input.Amount = amount
			_, err := ledger.Add(user.ID, input)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})

	t.Run("rejects_bad_dates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		for _, date := range []string{"", "03/01/2024", "2024-13-01", "yesterday"} {
			input := validExpenseInput()
			input.Date = date
			_, err := ledger.Add(user.ID, input)
			testutil.AssertAppError(t, err, "INVALID_INPUT")
		}
	})
}

func TestExpenseGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ledger := NewExpenseLedger(db)

	alice := testutil.CreateTestUser(t, db)
	bob := testutil.CreateTestUser(t, db)
	created := testutil.CreateTestExpense(t, db, alice.ID, "10.00", nil)

	expense, err := ledger.Get(alice.ID, created.ID)
	testutil.AssertNoError(t, err)
	if expense.ID != created.ID {
		t.Errorf("expected expense %d, got %d", created.ID, expense.ID)
	}

	_, err = ledger.Get(bob.ID, created.ID)
	testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")
}

func TestExpenseList(t *testing.T) {
	t.Run("newest_first_with_total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		for _, e := range []struct{ amount, date string }{
			{"10.00", "2024-01-15"},
			{"25.50", "2024-03-01"},
			{"5.25", "2024-02-10"},
		} {
			_, err := ledger.Add(user.ID, ExpenseInput{Amount: e.amount, Date: e.date})
			testutil.AssertNoError(t, err)
		}

		expenses, total, err := ledger.List(user.ID, nil)
		testutil.AssertNoError(t, err)

		if len(expenses) != 3 {
			t.Fatalf("expected 3 expenses, got %d", len(expenses))
		}
		dates := []string{"2024-03-01", "2024-02-10", "2024-01-15"}
		for i, want := range dates {
			if got := expenses[i].SpentOn.Format(models.DateLayout); got != want {
				t.Errorf("position %d: expected date %s, got %s", i, want, got)
			}
		}
		if !total.Equal(decimal.RequireFromString("40.75")) {
			t.Errorf("expected total 40.75, got %s", total)
		}
	})

	t.Run("category_filter", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		food := testutil.CreateTestCategory(t, db)
		travel := testutil.CreateTestCategory(t, db)

		testutil.CreateTestExpense(t, db, user.ID, "10.00", &food.ID)
		testutil.CreateTestExpense(t, db, user.ID, "25.50", &travel.ID)
		testutil.CreateTestExpense(t, db, user.ID, "7.00", nil)

		expenses, total, err := ledger.List(user.ID, &food.ID)
		testutil.AssertNoError(t, err)

		if len(expenses) != 1 {
			t.Fatalf("expected 1 filtered expense, got %d", len(expenses))
		}
		if expenses[0].CategoryID == nil || *expenses[0].CategoryID != food.ID {
			t.Error("expected the food expense")
		}
		if !total.Equal(decimal.RequireFromString("10.00")) {
			t.Errorf("expected filtered total 10.00, got %s", total)
		}
	})

	t.Run("scoped_to_owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		testutil.CreateTestExpense(t, db, alice.ID, "10.00", nil)

		expenses, total, err := ledger.List(bob.ID, nil)
		testutil.AssertNoError(t, err)
		if len(expenses) != 0 || !total.IsZero() {
			t.Errorf("expected empty ledger for other user, got %d rows, total %s", len(expenses), total)
		}
	})
}

func TestExpenseUpdate(t *testing.T) {
	t.Run("owner_can_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, "10.00", nil)

		updated, err := ledger.Update(user.ID, created.ID, ExpenseInput{
			Amount:     "42.00",
			Date:       "2024-04-01",
			Note:       "revised",
			CategoryID: &category.ID,
		})
		testutil.AssertNoError(t, err)

		if !updated.Amount.Equal(decimal.RequireFromString("42.00")) {
			t.Errorf("expected amount 42.00, got %s", updated.Amount)
		}
		if updated.CategoryID == nil || *updated.CategoryID != category.ID {
			t.Error("expected category to be set")
		}
		if updated.Note == nil || *updated.Note != "revised" {
			t.Error("expected note to be updated")
		}
	})

	t.Run("ownership_mismatch_leaves_row_untouched", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, alice.ID, "10.00", nil)

		_, err := ledger.Update(bob.ID, created.ID, ExpenseInput{Amount: "99.99", Date: "2024-04-01"})
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		var snapshot models.Expense
		testutil.AssertNoError(t, db.First(&snapshot, created.ID).Error)
		if !snapshot.Amount.Equal(created.Amount) {
			t.Errorf("expected amount unchanged at %s, got %s", created.Amount, snapshot.Amount)
		}
		if snapshot.UserID != alice.ID {
			t.Error("expected ownership unchanged")
		}
	})

	t.Run("clearing_category", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, "10.00", &category.ID)

		updated, err := ledger.Update(user.ID, created.ID, ExpenseInput{Amount: "10.00", Date: "2024-04-01"})
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Error("expected category reference to be cleared")
		}
	})

	t.Run("unknown_category_cleared_on_update", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, "10.00", &category.ID)

		bogus := uint(99999)
		input := ExpenseInput{Amount: "10.00", Date: "2024-04-01"}
		input.CategoryID = &bogus
		updated, err := ledger.Update(user.ID, created.ID, input)
		testutil.AssertNoError(t, err)
		if updated.CategoryID != nil {
			t.Errorf("expected nil category reference, got %d", *updated.CategoryID)
		}
	})
}

func TestExpenseDelete(t *testing.T) {
	t.Run("owner_can_delete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, "10.00", nil)

		err := ledger.Delete(user.ID, created.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Expense{}).Where("id = ?", created.ID).Count(&count)
		if count != 0 {
			t.Error("expected expense to be removed")
		}
	})

	t.Run("ownership_mismatch_leaves_row_present", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		ledger := NewExpenseLedger(db)

		alice := testutil.CreateTestUser(t, db)
		bob := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestExpense(t, db, alice.ID, "10.00", nil)

		err := ledger.Delete(bob.ID, created.ID)
		testutil.AssertAppError(t, err, "EXPENSE_NOT_FOUND")

		var count int64
		db.Model(&models.Expense{}).Where("id = ?", created.ID).Count(&count)
		if count != 1 {
			t.Error("expected expense to survive cross-user delete attempt")
		}
	})
}

func TestExportRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	ledger := NewExpenseLedger(db)

	user := testutil.CreateTestUser(t, db)
	food := &models.Category{Name: "Food"}
	testutil.AssertNoError(t, db.Create(food).Error)
	travel := &models.Category{Name: "Travel"}
	testutil.AssertNoError(t, db.Create(travel).Error)

	_, err := ledger.Add(user.ID, ExpenseInput{Amount: "10.00", Date: "2024-01-15", CategoryID: &food.ID})
	testutil.AssertNoError(t, err)
	_, err = ledger.Add(user.ID, ExpenseInput{Amount: "25.50", Date: "2024-03-01", CategoryID: &travel.ID})
	testutil.AssertNoError(t, err)
	_, err = ledger.Add(user.ID, ExpenseInput{Amount: "3.00", Date: "2024-02-01"})
	testutil.AssertNoError(t, err)

	rows, total, err := ledger.ExportRows(user.ID)
	testutil.AssertNoError(t, err)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if !total.Equal(decimal.RequireFromString("38.50")) {
		t.Errorf("expected total 38.50, got %s", total)
	}

	// Newest first: Travel, then the uncategorized row, then Food.
	if rows[0].Category != "Travel" || rows[2].Category != "Food" {
		t.Errorf("unexpected category order: %q, %q, %q", rows[0].Category, rows[1].Category, rows[2].Category)
	}
	if rows[1].Category != "Uncategorized" {
		t.Errorf("expected null category to render as Uncategorized, got %q", rows[1].Category)
	}
	if rows[0].Date != "2024-03-01" {
		t.Errorf("expected date 2024-03-01, got %s", rows[0].Date)
	}
}
