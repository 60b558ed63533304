package reportero

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"seguimiento-noticias/internal/domain"
	"seguimiento-noticias/internal/mocks"
	"seguimiento-noticias/internal/repository"
)

type subscriberMock struct {
	mock.Mock
}

func (m *subscriberMock) SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	args := m.Called(ctx, tokens, topic)
	return &messaging.TopicManagementResponse{SuccessCount: len(tokens)}, args.Error(0)
}

func (m *subscriberMock) UnsubscribeFromTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	args := m.Called(ctx, tokens, topic)
	return &messaging.TopicManagementResponse{SuccessCount: len(tokens)}, args.Error(0)
}

var ana = domain.Actor{ID: 7, Nombre: "Ana", Role: domain.RoleReportero}

func TestCreate_HashesPasswordAndForcesRole(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsByNombre", ctx, "Pedro", int64(0)).Return(false, nil)
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Reportero")).Return(nil)

	created, err := svc.Create(ctx, domain.CreateReporteroInput{Nombre: " Pedro ", Password: "secreto1", PuedeCrearNoticias: true})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleReportero, created.Role)
	assert.True(t, created.PuedeCrearNoticias)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("secreto1")))
}

func TestCreate_Validation(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateReporteroInput{Nombre: "Pedro", Password: "123"})
	assert.ErrorIs(t, err, domain.NewRuleError("validation.out_of_range"))

	repo.On("ExistsByNombre", ctx, "Ana", int64(0)).Return(true, nil)
	_, err = svc.Create(ctx, domain.CreateReporteroInput{Nombre: "Ana", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestCreate_DuplicateRace(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("ExistsByNombre", ctx, "Pedro", int64(0)).Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicate)

	_, err := svc.Create(ctx, domain.CreateReporteroInput{Nombre: "Pedro", Password: "secreto1"})
	assert.ErrorIs(t, err, ErrNameTaken)
}

func TestDelete_LastAdmin(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(1)).Return(false, nil)
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Reportero{ID: 1, Role: domain.RoleAdmin}, nil)
	repo.On("Delete", ctx, int64(2)).Return(false, nil)
	repo.On("GetByID", ctx, int64(2)).Return(nil, nil)
	repo.On("Delete", ctx, int64(3)).Return(true, nil)

	assert.ErrorIs(t, svc.Delete(ctx, 1), ErrLastAdmin)
	assert.ErrorIs(t, svc.Delete(ctx, 2), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, 3))
}

func TestUpdatePerfil(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(&domain.Reportero{ID: 7, Nombre: "Ana", Role: domain.RoleReportero}, nil)

	_, err := svc.UpdatePerfil(ctx, ana, domain.UpdatePerfilInput{Nombre: strPtr("Ana")})
	assert.ErrorIs(t, err, ErrNothingToSave)

	_, err = svc.UpdatePerfil(ctx, ana, domain.UpdatePerfilInput{Password: strPtr("123")})
	assert.ErrorIs(t, err, domain.NewRuleError("validation.out_of_range"))

	repo.On("ExistsByNombre", ctx, "Luis", int64(7)).Return(true, nil)
	_, err = svc.UpdatePerfil(ctx, ana, domain.UpdatePerfilInput{Nombre: strPtr("Luis")})
	assert.ErrorIs(t, err, ErrNameTaken)

	repo.On("ExistsByNombre", ctx, "Ana María", int64(7)).Return(false, nil)
	repo.On("UpdatePerfil", ctx, int64(7), "Ana María", mock.AnythingOfType("*string")).Return(nil)
	_, err = svc.UpdatePerfil(ctx, ana, domain.UpdatePerfilInput{Nombre: strPtr("Ana María"), Password: strPtr("nueva123")})
	require.NoError(t, err)
	repo.AssertCalled(t, "UpdatePerfil", ctx, int64(7), "Ana María", mock.AnythingOfType("*string"))
}

func TestRegisterDevice_MovesSubscriptions(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	sub := new(subscriberMock)
	svc := NewService(repo, sub)
	ctx := context.Background()

	repo.On("GetByID", ctx, int64(7)).Return(&domain.Reportero{ID: 7, Role: domain.RoleReportero, FCMToken: strPtr("old-token")}, nil)
	sub.On("UnsubscribeFromTopic", ctx, []string{"old-token"}, mock.Anything).Return(nil)
	sub.On("SubscribeToTopic", ctx, []string{"new-token"}, domain.TopicReportero).Return(nil)
	sub.On("SubscribeToTopic", ctx, []string{"new-token"}, "reportero_7").Return(errors.New("quota"))
	repo.On("SetFCMToken", ctx, int64(7), strPtr("new-token")).Return(nil)

	topics, err := svc.RegisterDevice(ctx, ana, domain.RegisterDeviceInput{Token: "new-token"})
	require.NoError(t, err)

	assert.Equal(t, []string{domain.TopicReportero, "reportero_7"}, topics)
	sub.AssertNumberOfCalls(t, "UnsubscribeFromTopic", 2)
	sub.AssertNumberOfCalls(t, "SubscribeToTopic", 2)
	repo.AssertExpectations(t)
}

func TestRegisterDevice_WithoutSubscriber(t *testing.T) {
	repo := new(mocks.ReporteroRepository)
	svc := NewService(repo, nil)
	ctx := context.Background()

	admin := domain.Actor{ID: 1, Role: domain.RoleAdmin}
	repo.On("GetByID", ctx, int64(1)).Return(&domain.Reportero{ID: 1, Role: domain.RoleAdmin}, nil)
	repo.On("SetFCMToken", ctx, int64(1), strPtr("tok")).Return(nil)

	topics, err := svc.RegisterDevice(ctx, admin, domain.RegisterDeviceInput{Token: "tok"})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.TopicAdmin, "reportero_1"}, topics)

	_, err = svc.RegisterDevice(ctx, admin, domain.RegisterDeviceInput{Token: "  "})
	assert.ErrorIs(t, err, domain.NewRuleError("validation.required"))
}

func strPtr(v string) *string { return &v }
