package services

import (
	"testing"

	"spendbook/internal/models"
	"spendbook/internal/testutil"
)

func TestCategoryList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	dir := NewCategoryDirectory(db)

	for _, name := range []string{"Travel", "Food", "Books"} {
		if err := db.Create(&models.Category{Name: name}).Error; err != nil {
			t.Fatalf("failed to create category: %v", err)
		}
	}

	categories, err := dir.List()
	testutil.AssertNoError(t, err)

	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	for i, want := range []string{"Books", "Food", "Travel"} {
		if categories[i].Name != want {
			t.Errorf("position %d: expected %q, got %q", i, want, categories[i].Name)
		}
	}
}

func TestCategoryAdd(t *testing.T) {
	t.Run("admin_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		user := testutil.CreateTestUser(t, db)
		_, err := dir.Add(actorFor(user), "Pets")
		testutil.AssertAppError(t, err, "FORBIDDEN")

		_, err = dir.Add(nil, "Pets")
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		category, err := dir.Add(actorFor(admin), "Pets")
		testutil.AssertNoError(t, err)
		if category.ID == 0 || category.Name != "Pets" {
			t.Errorf("unexpected category: %+v", category)
		}
	})

	t.Run("duplicate_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		_, err := dir.Add(actorFor(admin), "Pets")
		testutil.AssertNoError(t, err)

		_, err = dir.Add(actorFor(admin), "Pets")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")

		// Matching is case-sensitive, so a different casing is a new entry.
		_, err = dir.Add(actorFor(admin), "pets")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		_, err := dir.Add(actorFor(admin), "   ")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCategoryDelete(t *testing.T) {
	t.Run("detaches_referencing_expenses", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)

		e1 := testutil.CreateTestExpense(t, db, user.ID, "10.00", &category.ID)
		e2 := testutil.CreateTestExpense(t, db, user.ID, "25.50", &category.ID)

		err := dir.Delete(actorFor(admin), category.ID)
		testutil.AssertNoError(t, err)

		var count int64
		db.Model(&models.Category{}).Where("category_id = ?", category.ID).Count(&count)
		if count != 0 {
			t.Error("expected category row to be removed")
		}

		for _, id := range []uint{e1.ID, e2.ID} {
			var expense models.Expense
			if err := db.First(&expense, id).Error; err != nil {
				t.Fatalf("expected expense %d to survive category deletion: %v", id, err)
			}
			if expense.CategoryID != nil {
				t.Errorf("expected expense %d to be detached, still references %d", id, *expense.CategoryID)
			}
		}
	})

	t.Run("amounts_unchanged_after_detach", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)
		created := testutil.CreateTestExpense(t, db, user.ID, "99.99", &category.ID)

		err := dir.Delete(actorFor(admin), category.ID)
		testutil.AssertNoError(t, err)

		var expense models.Expense
		testutil.AssertNoError(t, db.First(&expense, created.ID).Error)
		if !expense.Amount.Equal(created.Amount) {
			t.Errorf("expected amount %s, got %s", created.Amount, expense.Amount)
		}
		if expense.UserID != user.ID {
			t.Errorf("expected owner %d, got %d", user.ID, expense.UserID)
		}
	})

	t.Run("admin_only", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		user := testutil.CreateTestUser(t, db)
		category := testutil.CreateTestCategory(t, db)

		err := dir.Delete(actorFor(user), category.ID)
		testutil.AssertAppError(t, err, "FORBIDDEN")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		dir := NewCategoryDirectory(db)

		admin := testutil.CreateTestAdmin(t, db)
		err := dir.Delete(actorFor(admin), 9999)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}
