package tui

import (
	"fmt"
	"time"

	"spendbook/internal/app"
	"spendbook/internal/models"
	"spendbook/internal/services"
)

func (t *Terminal) printScreen(view app.View) error {
	fmt.Fprintln(t.out)
	switch model := view.Model.(type) {
	case app.MainMenuModel:
		fmt.Fprintln(t.out, "=== Expense Tracker ===")
		fmt.Fprintln(t.out, "  1) Admin login")
		fmt.Fprintln(t.out, "  2) User login")
		fmt.Fprintln(t.out, "  3) Register as user")
		if !model.HasAdmin {
			fmt.Fprintln(t.out, "  4) Register the first admin")
		}
		fmt.Fprintln(t.out, "  q) Quit")

	case app.LoginModel:
		fmt.Fprintf(t.out, "=== %s login === (b to go back)\n", titleForRole(model.Role))

	case app.RegisterModel:
		fmt.Fprintf(t.out, "=== New %s account === (b to go back)\n", model.Role)

	case app.AdminDashboardModel:
		fmt.Fprintln(t.out, "=== Admin dashboard ===")
		fmt.Fprintln(t.out, "Users:")
		fmt.Fprintf(t.out, "  %-4s %-20s %-16s %-24s %s\n", "ID", "Name", "Username", "Email", "Role")
		for _, u := range model.Users {
			fmt.Fprintf(t.out, "  %-4d %-20s %-16s %-24s %s\n", u.ID, u.Fullname, u.Username, u.Email, u.Role)
		}
		fmt.Fprintln(t.out, "Categories:")
		for _, c := range model.Categories {
			fmt.Fprintf(t.out, "  %-4d %s\n", c.ID, c.Name)
		}
		fmt.Fprintln(t.out, "  1) Add user   2) Add admin   3) Edit user    4) Delete user")
		fmt.Fprintln(t.out, "  5) Add category   6) Delete category   b) Back   l) Log out")

	case app.UserDashboardModel:
		fmt.Fprintf(t.out, "=== %s's expenses ===\n", model.Fullname)
		if model.CategoryFilter != nil {
			fmt.Fprintf(t.out, "(filtered to category %d)\n", *model.CategoryFilter)
		}
		fmt.Fprintf(t.out, "  %-4s %-10s %-12s %-20s %s\n", "ID", "Amount", "Date", "Category", "Note")
		for _, e := range model.Expenses {
			note := ""
			if e.Note != nil {
				note = *e.Note
			}
			fmt.Fprintf(t.out, "  %-4d %-10s %-12s %-20s %s\n",
				e.ID, e.Amount.StringFixed(2), e.SpentOn.Format(models.DateLayout), e.CategoryName(), note)
		}
		fmt.Fprintf(t.out, "Total: %s\n", model.Total.StringFixed(2))
		fmt.Fprintln(t.out, "Categories:")
		for _, c := range model.Categories {
			fmt.Fprintf(t.out, "  %-4d %s\n", c.ID, c.Name)
		}
		fmt.Fprintln(t.out, "  a) Add expense   e) Edit   d) Delete   f) Filter   c) Clear filter")
		fmt.Fprintln(t.out, "  x) Export to spreadsheet   b) Back   l) Log out")

	case app.EditUserModel:
		fmt.Fprintf(t.out, "=== Edit user %d === (empty input keeps the current value)\n", model.User.ID)

	case app.EditExpenseModel:
		fmt.Fprintf(t.out, "=== Edit expense %d === (empty input keeps the current value)\n", model.Expense.ID)
	}
	return nil
}

// handle reads input for the current screen and dispatches one controller
// operation. It returns true when the user chose to quit.
func (t *Terminal) handle(view app.View) (bool, error) {
	switch model := view.Model.(type) {
	case app.MainMenuModel:
		return t.handleMainMenu(model)
	case app.LoginModel:
		return false, t.handleLogin(model)
	case app.RegisterModel:
		return false, t.handleRegister(model)
	case app.AdminDashboardModel:
		return false, t.handleAdminDashboard()
	case app.UserDashboardModel:
		return false, t.handleUserDashboard()
	case app.EditUserModel:
		return false, t.handleEditUser(model)
	case app.EditExpenseModel:
		return false, t.handleEditExpense(model)
	}
	return true, nil
}

func (t *Terminal) handleMainMenu(model app.MainMenuModel) (bool, error) {
	switch t.prompt("Choose") {
	case "1":
		return false, t.controller.NavigateTo(app.ScreenAdminLogin, app.Params{})
	case "2":
		return false, t.controller.NavigateTo(app.ScreenUserLogin, app.Params{})
	case "3":
		return false, t.controller.NavigateTo(app.ScreenRegisterUser, app.Params{})
	case "4":
		if !model.HasAdmin {
			return false, t.controller.NavigateTo(app.ScreenRegisterAdmin, app.Params{})
		}
	case "q":
		return true, nil
	}
	return false, t.redraw()
}

func (t *Terminal) handleLogin(model app.LoginModel) error {
	var username string
	if t.lastLogin != "" {
		username = t.promptDefault("Username", t.lastLogin)
	} else {
		username = t.prompt("Username")
	}
	if username == "b" {
		t.lastLogin = ""
		return t.controller.GoBack()
	}
	password := t.promptPassword("Password")
	if err := t.controller.Login(username, password, model.Role); err != nil {
		t.lastLogin = username
		return err
	}
	t.lastLogin = ""
	return nil
}

func (t *Terminal) handleRegister(model app.RegisterModel) error {
	input, back := t.readAccountForm(t.lastRegister)
	if back {
		t.lastRegister = nil
		return t.controller.GoBack()
	}

	var err error
	switch {
	case model.AdminInitiated && model.Role == models.RoleAdmin:
		err = t.controller.CreateAdmin(input)
	case model.AdminInitiated:
		err = t.controller.CreateUser(input)
	case model.Role == models.RoleAdmin:
		err = t.controller.RegisterAdmin(input)
	default:
		err = t.controller.RegisterUser(input)
	}
	if err != nil {
		retained := input
		retained.Password = ""
		t.lastRegister = &retained
		return err
	}
	t.lastRegister = nil
	return nil
}

// readAccountForm reads the account fields, prefilling from a previously
// rejected submission when one is carried.
func (t *Terminal) readAccountForm(prev *services.RegisterInput) (services.RegisterInput, bool) {
	var input services.RegisterInput
	if prev != nil {
		input.Fullname = t.promptDefault("Full name", prev.Fullname)
	} else {
		input.Fullname = t.prompt("Full name")
	}
	if input.Fullname == "b" {
		return services.RegisterInput{}, true
	}
	if prev != nil {
		input.Username = t.promptDefault("Username", prev.Username)
		input.Email = t.promptDefault("Email", prev.Email)
	} else {
		input.Username = t.prompt("Username")
		input.Email = t.prompt("Email")
	}
	input.Password = t.promptPassword("Password")
	return input, false
}

func (t *Terminal) handleAdminDashboard() error {
	switch t.prompt("Choose") {
	case "1":
		return t.controller.NavigateTo(app.ScreenAddUser, app.Params{})
	case "2":
		return t.controller.NavigateTo(app.ScreenCreateAdmin, app.Params{})
	case "3":
		if id, ok := t.promptUint("User id"); ok {
			return t.controller.NavigateTo(app.ScreenEditUser, app.Params{UserID: id})
		}
	case "4":
		if id, ok := t.promptUint("User id"); ok {
			return t.controller.DeleteUser(id)
		}
	case "5":
		return t.controller.AddCategory(t.prompt("Category name"))
	case "6":
		if id, ok := t.promptUint("Category id"); ok {
			return t.controller.DeleteCategory(id)
		}
	case "b":
		return t.controller.GoBack()
	case "l":
		return t.controller.Logout()
	}
	return t.redraw()
}

func (t *Terminal) handleUserDashboard() error {
	switch t.prompt("Choose") {
	case "a":
		return t.controller.AddExpense(services.ExpenseInput{
			Amount:     t.prompt("Amount"),
			Date:       t.promptDefault("Date (YYYY-MM-DD)", time.Now().Format(models.DateLayout)),
			Note:       t.prompt("Note (optional)"),
			CategoryID: t.promptOptionalUint("Category id (optional)"),
		})
	case "e":
		if id, ok := t.promptUint("Expense id"); ok {
			return t.controller.NavigateTo(app.ScreenEditExpense, app.Params{ExpenseID: id})
		}
	case "d":
		if id, ok := t.promptUint("Expense id"); ok {
			return t.controller.DeleteExpense(id)
		}
	case "f":
		return t.controller.SetExpenseFilter(t.promptOptionalUint("Category id"))
	case "c":
		return t.controller.SetExpenseFilter(nil)
	case "x":
		path, err := t.controller.Export()
		if err != nil {
			return err
		}
		fmt.Fprintf(t.out, "Saved to %s\n", path)
		return t.redraw()
	case "b":
		return t.controller.GoBack()
	case "l":
		return t.controller.Logout()
	}
	return t.redraw()
}

func (t *Terminal) handleEditUser(model app.EditUserModel) error {
	input := services.UpdateUserInput{
		Fullname: t.promptDefault("Full name", model.User.Fullname),
		Username: t.promptDefault("Username", model.User.Username),
		Email:    t.promptDefault("Email", model.User.Email),
		Password: t.promptPassword("New password (empty keeps the old one)"),
	}
	return t.controller.UpdateUser(model.User.ID, input)
}

func (t *Terminal) handleEditExpense(model app.EditExpenseModel) error {
	note := ""
	if model.Expense.Note != nil {
		note = *model.Expense.Note
	}
	input := services.ExpenseInput{
		Amount:     t.promptDefault("Amount", model.Expense.Amount.StringFixed(2)),
		Date:       t.promptDefault("Date (YYYY-MM-DD)", model.Expense.SpentOn.Format(models.DateLayout)),
		Note:       t.promptDefault("Note", note),
		CategoryID: model.Expense.CategoryID,
	}
	if id := t.promptOptionalUint("Category id (empty keeps the current one)"); id != nil {
		input.CategoryID = id
	}
	return t.controller.UpdateExpense(model.Expense.ID, input)
}

func titleForRole(role models.Role) string {
	if role == models.RoleAdmin {
		return "Admin"
	}
	return "User"
}
