package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/dbtest"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

type fakeRepository struct {
	listFn        func(ctx context.Context, params listNotificationsParams) ([]models.Notification, error)
	markReadFn    func(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error)
	markAllReadFn func(ctx context.Context, scope recipientScope, now time.Time) (int64, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository {
	return f
}

func (f *fakeRepository) Create(ctx context.Context, notification *models.Notification) error {
	return nil
}

func (f *fakeRepository) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, scope, notificationID, now)
	}
	return notificationMarkResult{}, nil
}

func (f *fakeRepository) MarkAllRead(ctx context.Context, scope recipientScope, now time.Time) (int64, error) {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, scope, now)
	}
	return 0, nil
}

func newServiceWithRepo(repo Repository) Service {
	svc, err := NewService(repo)
	if err != nil {
		panic(err)
	}
	return svc
}

func TestService_ListNotificationsDefaultsLimit(t *testing.T) {
	var captured listNotificationsParams
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listNotificationsParams) ([]models.Notification, error) {
			captured = params
			return []models.Notification{{ID: 1}, {ID: 2, IsRead: true}}, nil
		},
	}
	svc := newServiceWithRepo(repo)

	result, err := svc.List(context.Background(), ListParams{TenantID: 1, UserID: 7, UnreadOnly: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Limit != DefaultLimit {
		t.Fatalf("expected default limit %d got %d", DefaultLimit, captured.Limit)
	}
	if !captured.UnreadOnly || captured.Scope.UserID != 7 || captured.Scope.TenantID != 1 {
		t.Fatalf("unexpected params %+v", captured)
	}
	if len(result.Items) != 2 || result.UnreadCount != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestService_ListNotificationsClampsLimit(t *testing.T) {
	var captured listNotificationsParams
	repo := &fakeRepository{
		listFn: func(ctx context.Context, params listNotificationsParams) ([]models.Notification, error) {
			captured = params
			return nil, nil
		},
	}
	svc := newServiceWithRepo(repo)

	result, err := svc.List(context.Background(), ListParams{TenantID: 1, Limit: 1000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured.Limit != MaxLimit {
		t.Fatalf("expected limit %d got %d", MaxLimit, captured.Limit)
	}
	if result.Items == nil {
		t.Fatal("expected empty slice, got nil")
	}
}

func TestService_ListRequiresTenant(t *testing.T) {
	svc := newServiceWithRepo(&fakeRepository{})
	_, err := svc.List(context.Background(), ListParams{})
	if err == nil {
		t.Fatal("expected error for missing tenant")
	}
	if code := pkgerrors.As(err).Code(); code != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %s", code)
	}
}

func TestService_MarkRead(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error) {
			return notificationMarkResult{Found: true, Updated: true}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	if err := svc.MarkRead(context.Background(), 1, 2, 3); err != nil {
		t.Fatalf("unexpected mark read error: %v", err)
	}
}

func TestService_MarkReadNotFound(t *testing.T) {
	repo := &fakeRepository{
		markReadFn: func(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error) {
			return notificationMarkResult{Found: false}, nil
		},
	}
	svc := newServiceWithRepo(repo)
	if err := svc.MarkRead(context.Background(), 1, 2, 3); err == nil {
		t.Fatal("expected not found error")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestService_MarkAllRead(t *testing.T) {
	repo := &fakeRepository{
		markAllReadFn: func(ctx context.Context, scope recipientScope, now time.Time) (int64, error) {
			return 3, nil
		},
	}
	svc := newServiceWithRepo(repo)
	count, err := svc.MarkAllRead(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected mark all read error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 updated rows, got %d", count)
	}
}

func TestService_MarkAllReadError(t *testing.T) {
	repo := &fakeRepository{
		markAllReadFn: func(ctx context.Context, scope recipientScope, now time.Time) (int64, error) {
			return 0, errors.New("boom")
		},
	}
	svc := newServiceWithRepo(repo)
	if _, err := svc.MarkAllRead(context.Background(), 1, 2); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepository_RecipientScope(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	repo := NewRepository(conn.DB())

	owner := int64(10)
	other := int64(11)
	rows := []models.Notification{
		{TenantID: 1, Title: "broadcast", Message: "m", Type: models.NotificationInfo, Priority: models.PriorityNormal},
		{TenantID: 1, UserID: &owner, Title: "mine", Message: "m", Type: models.NotificationInfo, Priority: models.PriorityNormal},
		{TenantID: 1, UserID: &other, Title: "theirs", Message: "m", Type: models.NotificationInfo, Priority: models.PriorityNormal},
		{TenantID: 2, Title: "other tenant", Message: "m", Type: models.NotificationInfo, Priority: models.PriorityNormal},
	}
	for i := range rows {
		dbtest.MustCreate(t, conn.DB(), &rows[i])
	}

	svc := newServiceWithRepo(repo)
	result, err := svc.List(ctx, ListParams{TenantID: 1, UserID: owner})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(result.Items) != 2 || result.UnreadCount != 2 {
		t.Fatalf("expected broadcast and own notification, got %+v", result.Items)
	}

	if err := svc.MarkRead(ctx, 1, owner, rows[2].ID); err == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("marking another user's notification must be not found, got %v", err)
	}
	if err := svc.MarkRead(ctx, 1, owner, rows[1].ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}
	if err := svc.MarkRead(ctx, 1, owner, rows[1].ID); err != nil {
		t.Fatalf("marking twice must succeed: %v", err)
	}

	count, err := svc.MarkAllRead(ctx, 1, owner)
	if err != nil {
		t.Fatalf("mark all read: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the broadcast to be updated, got %d", count)
	}

	var stored models.Notification
	if err := conn.DB().First(&stored, rows[1].ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !stored.IsRead || stored.ReadAt == nil {
		t.Fatalf("expected read timestamp, got %+v", stored)
	}

	unread, err := svc.List(ctx, ListParams{TenantID: 1, UserID: other, UnreadOnly: true})
	if err != nil {
		t.Fatalf("list unread: %v", err)
	}
	if len(unread.Items) != 1 || unread.Items[0].Title != "theirs" {
		t.Fatalf("unexpected unread set %+v", unread.Items)
	}
}
