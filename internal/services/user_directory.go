package services

import (
	"errors"

	"gorm.io/gorm"

	"spendbook/internal/auth"
	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// userDirectory handles account and role management against the store.
type userDirectory struct {
	db *gorm.DB
}

// NewUserDirectory creates a new UserDirectory.
func NewUserDirectory(db *gorm.DB) UserDirectory {
	return &userDirectory{db: db}
}

// Register creates a new account. Creating an admin is open only while no
// admin exists yet (first-time setup); afterwards it requires an admin actor.
// Creating a regular user is open to self-registration and to admins.
func (s *userDirectory) Register(actor *Actor, input RegisterInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if input.Role == models.RoleAdmin {
		hasAdmin, err := s.AdminExists()
		if err != nil {
			return nil, err
		}
		if hasAdmin && !actor.IsAdmin() {
			return nil, apperrors.WithMessage(apperrors.ErrForbidden, "only an admin can create admin accounts")
		}
	}

	if err := s.checkUnique(input.Username, input.Email, 0); err != nil {
		return nil, err
	}

	digest, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	user := &models.User{
		Fullname: input.Fullname,
		Username: input.Username,
		Email:    input.Email,
		Password: digest,
		Role:     input.Role,
	}
	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return user, nil
}

// Authenticate verifies the credentials and the expected role. Every failure
// mode collapses into the same generic error so nothing reveals whether the
// username, the password, or the role was wrong.
func (s *userDirectory) Authenticate(username, password string, expectedRole models.Role) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if !auth.CheckPassword(password, user.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Role != expectedRole {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

// ListUsers returns all accounts ordered by role then full name. Admin only.
func (s *userDirectory) ListUsers(actor *Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var users []models.User
	if err := s.db.Order("role, fullname").Find(&users).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return users, nil
}

// GetUser fetches a single account by id. Admin only.
func (s *userDirectory) GetUser(actor *Actor, id uint) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// UpdateUser edits an account. Username/email collisions against a different
// id are conflicts; a blank password keeps the stored digest.
func (s *userDirectory) UpdateUser(actor *Actor, id uint, input UpdateUserInput) (*models.User, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if err := s.checkUnique(input.Username, input.Email, id); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"fullname": input.Fullname,
		"username": input.Username,
		"email":    input.Email,
	}
	if input.Password != "" {
		digest, err := auth.HashPassword(input.Password)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
		}
		updates["password"] = digest
	}

	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &user, nil
}

// DeleteUser removes a non-admin account and all of its expenses in one
// transaction. Admin accounts are protected on this path.
func (s *userDirectory) DeleteUser(actor *Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	if user.Role == models.RoleAdmin {
		return apperrors.ErrProtectedRecord
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// AdminExists reports whether any admin account exists. Gates the
// register-admin screen.
func (s *userDirectory) AdminExists() (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return count > 0, nil
}

// checkUnique enforces global username/email uniqueness, ignoring the row
// with excludeID (zero means no exclusion) so edits don't collide with
// themselves.
func (s *userDirectory) checkUnique(username, email string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateEmail
	}

	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if count > 0 {
		return apperrors.ErrDuplicateUsername
	}
	return nil
}
