package auth

import (
	"context"
	"testing"

	autherrors "ak-attendance/internal/auth/errors"
	"ak-attendance/internal/employee"
	"ak-attendance/internal/settings"
	"ak-attendance/internal/shared/token"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeSettingsRepo struct {
	values map[string]string
}

func (f *fakeSettingsRepo) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return "", settings.ErrNotFound
}

func (f *fakeSettingsRepo) Set(ctx context.Context, key, value string) error {
	f.values[key] = value
	return nil
}

type fakeEmployeeRepo struct {
	employee.Repository
	byPin map[string]*employee.Employee
}

func (f *fakeEmployeeRepo) FindActiveByPin(ctx context.Context, pin string) (*employee.Employee, error) {
	if e, ok := f.byPin[pin]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func hashPin(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestService_Login_AdminPin(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{values: map[string]string{
		settings.KeyAdminPin: hashPin(t, "6969"),
	}}
	svc := NewService(settingsRepo, &fakeEmployeeRepo{})

	resp, err := svc.Login(context.Background(), LoginRequest{Pin: "6969"})
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, resp.Role)
	assert.Zero(t, resp.EmployeeID)

	claims, err := token.Parse(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, RoleAdmin, claims.Role)
}

func TestService_Login_EmployeePin(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{values: map[string]string{
		settings.KeyAdminPin: hashPin(t, "6969"),
	}}
	employees := &fakeEmployeeRepo{byPin: map[string]*employee.Employee{
		"4321": {ID: 7, Name: "Budi"},
	}}
	svc := NewService(settingsRepo, employees)

	resp, err := svc.Login(context.Background(), LoginRequest{Pin: "4321"})
	assert.NoError(t, err)
	assert.Equal(t, RoleEmployee, resp.Role)
	assert.Equal(t, uint(7), resp.EmployeeID)
	assert.Equal(t, "Budi", resp.Name)

	claims, err := token.Parse(resp.Token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.EmployeeID)
}

func TestService_Login_UnknownPin(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{values: map[string]string{
		settings.KeyAdminPin: hashPin(t, "6969"),
	}}
	svc := NewService(settingsRepo, &fakeEmployeeRepo{byPin: map[string]*employee.Employee{}})

	_, err := svc.Login(context.Background(), LoginRequest{Pin: "0000"})
	assert.ErrorIs(t, err, autherrors.ErrInvalidPin)
}

func TestService_Login_RejectsMalformedPin(t *testing.T) {
	svc := NewService(&fakeSettingsRepo{values: map[string]string{}}, &fakeEmployeeRepo{})

	for _, pin := range []string{"", "12", "12345", "abcd", "12a4"} {
		_, err := svc.Login(context.Background(), LoginRequest{Pin: pin})
		assert.ErrorIs(t, err, autherrors.ErrInvalidPin, "pin %q", pin)
	}
}

func TestService_UpdateAdminPin(t *testing.T) {
	settingsRepo := &fakeSettingsRepo{values: map[string]string{
		settings.KeyAdminPin: hashPin(t, "6969"),
	}}
	svc := NewService(settingsRepo, &fakeEmployeeRepo{})
	ctx := context.Background()

	// PIN lama salah
	err := svc.UpdateAdminPin(ctx, UpdateAdminPinRequest{CurrentPin: "1111", NewPin: "4242"})
	assert.ErrorIs(t, err, autherrors.ErrCurrentPinMismatch)

	// PIN baru bukan 4 digit
	err = svc.UpdateAdminPin(ctx, UpdateAdminPinRequest{CurrentPin: "6969", NewPin: "42"})
	assert.ErrorIs(t, err, autherrors.ErrPinFormat)

	err = svc.UpdateAdminPin(ctx, UpdateAdminPinRequest{CurrentPin: "6969", NewPin: "4242"})
	assert.NoError(t, err)

	// Hash baru tersimpan dan cocok dengan PIN baru
	stored := settingsRepo.values[settings.KeyAdminPin]
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("4242")))
}
