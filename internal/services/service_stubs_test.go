package services

import (
	"context"
	"errors"

	"github.com/terraincognita07/femora/internal/models"
)

var errStubNotFound = errors.New("stub: not found")

func isStubNotFound(err error) bool {
	return errors.Is(err, errStubNotFound)
}

type stubCycleRepo struct {
	cycles      []models.Cycle
	listErr     error
	createErr   error
	created     []models.Cycle
	lastLimit   int
	createCalls int
}

func (stub *stubCycleRepo) ListRecentByUser(_ context.Context, _ uint, limit int) ([]models.Cycle, error) {
	stub.lastLimit = limit
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	if limit > 0 && len(stub.cycles) > limit {
		return stub.cycles[:limit], nil
	}
	return stub.cycles, nil
}

func (stub *stubCycleRepo) Create(_ context.Context, cycle *models.Cycle) error {
	stub.createCalls++
	if stub.createErr != nil {
		return stub.createErr
	}
	cycle.ID = uint(len(stub.created) + 1)
	stub.created = append(stub.created, *cycle)
	return nil
}

type stubDischargeRepo struct {
	discharges []models.Discharge
	listErr    error
	createErr  error
	created    []models.Discharge
	lastLimit  int
}

func (stub *stubDischargeRepo) ListRecentByUser(_ context.Context, _ uint, limit int) ([]models.Discharge, error) {
	stub.lastLimit = limit
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	if limit > 0 && len(stub.discharges) > limit {
		return stub.discharges[:limit], nil
	}
	return stub.discharges, nil
}

func (stub *stubDischargeRepo) Create(_ context.Context, discharge *models.Discharge) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	discharge.ID = uint(len(stub.created) + 1)
	stub.created = append(stub.created, *discharge)
	return nil
}

type stubAuthUserRepo struct {
	users          map[string]models.User
	nextID         uint
	existsErr      error
	updatedHash    string
	updatedMustChg bool
}

func newStubAuthUserRepo() *stubAuthUserRepo {
	return &stubAuthUserRepo{users: make(map[string]models.User), nextID: 1}
}

func (stub *stubAuthUserRepo) ExistsByNormalizedEmail(_ context.Context, email string) (bool, error) {
	if stub.existsErr != nil {
		return false, stub.existsErr
	}
	_, ok := stub.users[email]
	return ok, nil
}

func (stub *stubAuthUserRepo) FindByNormalizedEmail(_ context.Context, email string) (models.User, error) {
	user, ok := stub.users[email]
	if !ok {
		return models.User{}, errStubNotFound
	}
	return user, nil
}

func (stub *stubAuthUserRepo) FindByID(_ context.Context, userID uint) (models.User, error) {
	for _, user := range stub.users {
		if user.ID == userID {
			return user, nil
		}
	}
	return models.User{}, errStubNotFound
}

func (stub *stubAuthUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.Email] = *user
	return nil
}

func (stub *stubAuthUserRepo) UpdatePassword(_ context.Context, userID uint, passwordHash string, mustChangePassword bool) error {
	for email, user := range stub.users {
		if user.ID == userID {
			user.PasswordHash = passwordHash
			user.MustChangePassword = mustChangePassword
			stub.users[email] = user
			stub.updatedHash = passwordHash
			stub.updatedMustChg = mustChangePassword
			return nil
		}
	}
	return errStubNotFound
}
