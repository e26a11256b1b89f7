package app

import (
	"github.com/shopspring/decimal"

	"spendbook/internal/models"
)

// ScreenID identifies one screen of the application.
type ScreenID string

const (
	ScreenMainMenu       ScreenID = "main-menu"
	ScreenRegisterAdmin  ScreenID = "register-admin"
	ScreenRegisterUser   ScreenID = "register-user"
	ScreenAdminLogin     ScreenID = "admin-login"
	ScreenUserLogin      ScreenID = "user-login"
	ScreenAdminDashboard ScreenID = "admin-dashboard"
	ScreenUserDashboard  ScreenID = "user-dashboard"
	ScreenCreateAdmin    ScreenID = "admin-create-admin"
	ScreenAddUser        ScreenID = "admin-add-user"
	ScreenEditUser       ScreenID = "admin-edit-user"
	ScreenEditExpense    ScreenID = "edit-expense"
)

// screenRoles maps each protected screen to the role its principal must
// hold. Screens absent from the map are public. The gate runs on every
// transition, forward and back alike.
var screenRoles = map[ScreenID]models.Role{
	ScreenAdminDashboard: models.RoleAdmin,
	ScreenCreateAdmin:    models.RoleAdmin,
	ScreenAddUser:        models.RoleAdmin,
	ScreenEditUser:       models.RoleAdmin,
	ScreenUserDashboard:  models.RoleUser,
	ScreenEditExpense:    models.RoleUser,
}

// Params carries the per-screen arguments kept on the navigation stacks so a
// screen can be rebuilt from scratch on every visit.
type Params struct {
	UserID         uint  // admin-edit-user target
	ExpenseID      uint  // edit-expense target
	CategoryFilter *uint // user-dashboard category filter, nil = all
}

// Entry is one slot on the history or forward stack.
type Entry struct {
	Screen ScreenID
	Params Params
}

// View is the message the navigation core emits to the presentation layer:
// render screen ID with model Model. The core never touches widgets.
type View struct {
	ID    ScreenID
	Model interface{}
}

// Renderer is the presentation side of the screen protocol. Implementations
// own teardown and rebuild of whatever they put on screen.
type Renderer interface {
	Render(view View) error
}

// MainMenuModel drives the entry screen. Registration of the first admin is
// offered only while no admin exists.
type MainMenuModel struct {
	HasAdmin bool
}

// LoginModel drives the two role-specific login screens.
type LoginModel struct {
	Role models.Role
}

// RegisterModel drives the account creation screens. AdminInitiated marks the
// dashboard-launched variants, which return to the dashboard on success.
type RegisterModel struct {
	Role           models.Role
	AdminInitiated bool
}

// AdminDashboardModel carries both dashboard tabs: user management and the
// category taxonomy.
type AdminDashboardModel struct {
	Users      []models.User
	Categories []models.Category
}

// UserDashboardModel carries the signed-in user's ledger view.
type UserDashboardModel struct {
	Fullname       string
	Categories     []models.Category
	Expenses       []models.Expense
	Total          decimal.Decimal
	CategoryFilter *uint
}

// EditUserModel prefills the admin's user edit form.
type EditUserModel struct {
	User models.User
}

// EditExpenseModel prefills the expense edit form.
type EditExpenseModel struct {
	Expense    models.Expense
	Categories []models.Category
}
