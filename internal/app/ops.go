package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/export"
	"spendbook/internal/logger"
	"spendbook/internal/models"
	"spendbook/internal/services"
)

// Login authenticates against the directory, binds the principal to the
// session, and lands on the role's dashboard.
func (c *Controller) Login(username, password string, role models.Role) error {
	user, err := c.users.Authenticate(username, password, role)
	if err != nil {
		return err
	}

	c.session.SignIn(Principal{
		UserID:   user.ID,
		Role:     user.Role,
		Fullname: user.Fullname,
	})
	logger.Get().Infow("signed in",
		"session_id", c.session.ID(), "username", user.Username, "role", user.Role)

	if user.Role == models.RoleAdmin {
		return c.NavigateTo(ScreenAdminDashboard, Params{})
	}
	return c.NavigateTo(ScreenUserDashboard, Params{})
}

// Logout clears the principal and both navigation stacks and returns to the
// main menu. Stale dashboard entries must not survive into the next session.
func (c *Controller) Logout() error {
	logger.Get().Infow("signed out", "session_id", c.session.ID())
	c.session.SignOut()
	c.reset()
	return c.NavigateTo(ScreenMainMenu, Params{})
}

// RegisterAdmin creates an administrator account from the public
// registration screen and returns to the main menu. The directory only
// allows this while no administrator exists yet.
func (c *Controller) RegisterAdmin(input services.RegisterInput) error {
	input.Role = models.RoleAdmin
	if _, err := c.users.Register(c.session.Actor(), input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenMainMenu, Params{})
}

// RegisterUser creates a regular account from the public registration screen
// and returns to the main menu.
func (c *Controller) RegisterUser(input services.RegisterInput) error {
	input.Role = models.RoleUser
	if _, err := c.users.Register(c.session.Actor(), input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenMainMenu, Params{})
}

// CreateAdmin creates a second administrator from the admin dashboard and
// returns there.
func (c *Controller) CreateAdmin(input services.RegisterInput) error {
	input.Role = models.RoleAdmin
	if _, err := c.users.Register(c.session.Actor(), input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenAdminDashboard, Params{})
}

// CreateUser creates a regular account from the admin dashboard and
// returns there.
func (c *Controller) CreateUser(input services.RegisterInput) error {
	input.Role = models.RoleUser
	if _, err := c.users.Register(c.session.Actor(), input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenAdminDashboard, Params{})
}

// UpdateUser applies an edit to the target account and returns to the admin
// dashboard so the refreshed table is visible.
func (c *Controller) UpdateUser(id uint, input services.UpdateUserInput) error {
	if _, err := c.users.UpdateUser(c.session.Actor(), id, input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenAdminDashboard, Params{})
}

// DeleteUser removes the target account and its expenses and re-renders the
// dashboard in place.
func (c *Controller) DeleteUser(id uint) error {
	if err := c.users.DeleteUser(c.session.Actor(), id); err != nil {
		return err
	}
	return c.refresh(nil)
}

// AddCategory adds a category to the shared taxonomy and re-renders the
// dashboard in place.
func (c *Controller) AddCategory(name string) error {
	if _, err := c.categories.Add(c.session.Actor(), name); err != nil {
		return err
	}
	return c.refresh(nil)
}

// DeleteCategory removes a category, detaching any expenses that referenced
// it, and re-renders the dashboard in place.
func (c *Controller) DeleteCategory(id uint) error {
	if err := c.categories.Delete(c.session.Actor(), id); err != nil {
		return err
	}
	return c.refresh(nil)
}

// AddExpense records a new expense for the signed-in user and re-renders the
// ledger in place.
func (c *Controller) AddExpense(input services.ExpenseInput) error {
	p := c.session.Principal()
	if p == nil || p.Role != models.RoleUser {
		return apperrors.ErrForbidden
	}
	if _, err := c.expenses.Add(p.UserID, input); err != nil {
		return err
	}
	return c.refresh(nil)
}

// UpdateExpense applies an edit to the signed-in user's expense and returns
// to the ledger.
func (c *Controller) UpdateExpense(expenseID uint, input services.ExpenseInput) error {
	p := c.session.Principal()
	if p == nil || p.Role != models.RoleUser {
		return apperrors.ErrForbidden
	}
	if _, err := c.expenses.Update(p.UserID, expenseID, input); err != nil {
		return err
	}
	return c.NavigateTo(ScreenUserDashboard, Params{})
}

// DeleteExpense removes the signed-in user's expense and re-renders the
// ledger in place.
func (c *Controller) DeleteExpense(expenseID uint) error {
	p := c.session.Principal()
	if p == nil || p.Role != models.RoleUser {
		return apperrors.ErrForbidden
	}
	if err := c.expenses.Delete(p.UserID, expenseID); err != nil {
		return err
	}
	return c.refresh(nil)
}

// SetExpenseFilter narrows the ledger to one category, or shows all when nil.
// The filter lives in the current entry's params so it survives a round trip
// through the edit screen.
func (c *Controller) SetExpenseFilter(categoryID *uint) error {
	p := c.session.Principal()
	if p == nil || p.Role != models.RoleUser {
		return apperrors.ErrForbidden
	}
	return c.refresh(func(params *Params) {
		params.CategoryFilter = categoryID
	})
}

// Export writes the signed-in user's full ledger to a spreadsheet in the
// export directory and returns the path of the artifact.
func (c *Controller) Export() (string, error) {
	p := c.session.Principal()
	if p == nil || p.Role != models.RoleUser {
		return "", apperrors.ErrForbidden
	}

	rows, total, err := c.expenses.ExportRows(p.UserID)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("expenses_%s_%s.xlsx",
		strings.ReplaceAll(p.Fullname, " ", "_"),
		time.Now().Format("20060102"))
	dest := filepath.Join(c.exportDir, name)

	if err := export.WriteSpreadsheet(rows, total, dest); err != nil {
		return "", err
	}
	logger.Get().Infow("exported ledger",
		"session_id", c.session.ID(), "rows", len(rows), "path", dest)
	return dest, nil
}
