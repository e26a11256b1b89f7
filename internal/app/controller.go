package app

import (
	apperrors "spendbook/internal/errors"
	"spendbook/internal/logger"
	"spendbook/internal/models"
	"spendbook/internal/services"
)

// Controller owns the session and the navigation stacks and dispatches every
// screen transition. The top of the history stack is always the screen
// currently on display.
type Controller struct {
	session  *Session
	renderer Renderer

	users      services.UserDirectory
	categories services.CategoryDirectory
	expenses   services.ExpenseLedger

	exportDir string

	history []Entry
	forward []Entry
}

// NewController wires the navigation core. The renderer is the replaceable
// presentation toolkit; exportDir is where export artifacts land.
func NewController(
	session *Session,
	renderer Renderer,
	users services.UserDirectory,
	categories services.CategoryDirectory,
	expenses services.ExpenseLedger,
	exportDir string,
) *Controller {
	return &Controller{
		session:    session,
		renderer:   renderer,
		users:      users,
		categories: categories,
		expenses:   expenses,
		exportDir:  exportDir,
	}
}

// Start renders the initial screen: main menu, empty stacks, no principal.
func (c *Controller) Start() error {
	return c.NavigateTo(ScreenMainMenu, Params{})
}

// Session exposes the session to the presentation layer (read-only use).
func (c *Controller) Session() *Session {
	return c.session
}

// Current returns the entry on display. Valid only after Start.
func (c *Controller) Current() Entry {
	if len(c.history) == 0 {
		return Entry{Screen: ScreenMainMenu}
	}
	return c.history[len(c.history)-1]
}

// NavigateTo performs a forward transition: the authorization gate runs
// first, then the target screen is rebuilt from a fresh store query. The
// stacks change only once the render succeeds, so a target that fails to
// build (a stale id, a store error) leaves the current screen both on
// display and on top of history.
func (c *Controller) NavigateTo(screen ScreenID, p Params) error {
	if err := c.authorize(screen); err != nil {
		return err
	}

	entry := Entry{Screen: screen, Params: p}
	if err := c.render(entry); err != nil {
		return err
	}
	c.history = append(c.history, entry)
	c.forward = c.forward[:0]
	return nil
}

// GoBack pops the current screen onto the forward stack and re-renders the
// previous one, or the main menu once the history is exhausted. This is a
// back transition throughout, so the forward stack is retained, including
// the entry just popped. Unlike the forward path it never fails on
// authorization: a principal that no longer holds the required role is
// routed to the main menu instead. A render failure undoes the pop so the
// history top stays the screen on display.
func (c *Controller) GoBack() error {
	if len(c.history) == 0 {
		return nil
	}

	current := c.history[len(c.history)-1]
	c.history = c.history[:len(c.history)-1]

	target := Entry{Screen: ScreenMainMenu}
	if len(c.history) > 0 {
		target = c.history[len(c.history)-1]
		if err := c.authorize(target.Screen); err != nil {
			logger.Get().Warnw("back navigation denied, returning to main menu",
				"screen", target.Screen, "session_id", c.session.ID())
			c.reset()
			return c.NavigateTo(ScreenMainMenu, Params{})
		}
	}

	if err := c.render(target); err != nil {
		c.history = append(c.history, current)
		return err
	}
	c.forward = append(c.forward, current)
	if len(c.history) == 0 {
		c.history = append(c.history, target)
	}
	return nil
}

// refresh re-renders the current screen after mutating its params, without
// touching either stack. Used for in-place updates such as the category
// filter or a table refresh after a delete.
func (c *Controller) refresh(mutate func(*Params)) error {
	if len(c.history) == 0 {
		return c.Start()
	}
	top := &c.history[len(c.history)-1]
	if mutate != nil {
		mutate(&top.Params)
	}
	return c.render(*top)
}

// reset clears both navigation stacks.
func (c *Controller) reset() {
	c.history = c.history[:0]
	c.forward = c.forward[:0]
}

// authorize checks the target screen's required role against the principal.
func (c *Controller) authorize(screen ScreenID) error {
	required, protected := screenRoles[screen]
	if !protected {
		return nil
	}
	p := c.session.Principal()
	if p == nil || p.Role != required {
		return apperrors.ErrForbidden
	}
	return nil
}

// render rebuilds the entry's view model from the store and hands it to the
// renderer. Every screen re-queries on render; nothing is cached between
// screens.
func (c *Controller) render(entry Entry) error {
	model, err := c.buildModel(entry)
	if err != nil {
		return err
	}
	return c.renderer.Render(View{ID: entry.Screen, Model: model})
}

func (c *Controller) buildModel(entry Entry) (interface{}, error) {
	switch entry.Screen {
	case ScreenMainMenu:
		hasAdmin, err := c.users.AdminExists()
		if err != nil {
			return nil, err
		}
		return MainMenuModel{HasAdmin: hasAdmin}, nil

	case ScreenRegisterAdmin:
		return RegisterModel{Role: models.RoleAdmin}, nil

	case ScreenRegisterUser:
		return RegisterModel{Role: models.RoleUser}, nil

	case ScreenAdminLogin:
		return LoginModel{Role: models.RoleAdmin}, nil

	case ScreenUserLogin:
		return LoginModel{Role: models.RoleUser}, nil

	case ScreenAdminDashboard:
		users, err := c.users.ListUsers(c.session.Actor())
		if err != nil {
			return nil, err
		}
		categories, err := c.categories.List()
		if err != nil {
			return nil, err
		}
		return AdminDashboardModel{Users: users, Categories: categories}, nil

	case ScreenUserDashboard:
		p := c.session.Principal()
		categories, err := c.categories.List()
		if err != nil {
			return nil, err
		}
		expenses, total, err := c.expenses.List(p.UserID, entry.Params.CategoryFilter)
		if err != nil {
			return nil, err
		}
		return UserDashboardModel{
			Fullname:       p.Fullname,
			Categories:     categories,
			Expenses:       expenses,
			Total:          total,
			CategoryFilter: entry.Params.CategoryFilter,
		}, nil

	case ScreenCreateAdmin:
		return RegisterModel{Role: models.RoleAdmin, AdminInitiated: true}, nil

	case ScreenAddUser:
		return RegisterModel{Role: models.RoleUser, AdminInitiated: true}, nil

	case ScreenEditUser:
		user, err := c.users.GetUser(c.session.Actor(), entry.Params.UserID)
		if err != nil {
			return nil, err
		}
		return EditUserModel{User: *user}, nil

	case ScreenEditExpense:
		p := c.session.Principal()
		expense, err := c.expenses.Get(p.UserID, entry.Params.ExpenseID)
		if err != nil {
			return nil, err
		}
		categories, err := c.categories.List()
		if err != nil {
			return nil, err
		}
		return EditExpenseModel{Expense: *expense, Categories: categories}, nil
	}

	return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown screen")
}
