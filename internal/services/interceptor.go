package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/smartlocker-backend/internal/logger"
	"github.com/yungbote/smartlocker-backend/internal/repos"
	"github.com/yungbote/smartlocker-backend/internal/types"
)

// Action tags classifying intercepted operations for audit labeling and
// notification policy lookup.
const (
	ActionUserRegistered    = "USER_REGISTERED"
	ActionLockerRegistered  = "LOCKER_REGISTERED"
	ActionPackageRegistered = "PACKAGE_REGISTERED"
	ActionPackagePickedUp   = "PACKAGE_PICKED_UP"
	ActionPackageRemoved    = "PACKAGE_REMOVED"
)

// EntityKind names the aggregate an intercepted operation produced. Carrying
// it explicitly keeps the policy lookup a table scan instead of runtime type
// inspection chains.
type EntityKind string

const (
	EntityKindUser    EntityKind = "user"
	EntityKindLocker  EntityKind = "locker"
	EntityKindPackage EntityKind = "package"
)

// ActionInterceptor wraps auditable operations: the operation runs exactly
// once, an audit record is written whether it succeeded or failed, and on
// success the static notification policy table decides whether anyone is
// notified. Audit and notification writes are best-effort and never change
// what the caller sees.
type ActionInterceptor struct {
	log           *logger.Logger
	audit         AuditService
	notifications NotificationService
	users         repos.UserRepo
	lockers       repos.LockerRepo
}

func NewActionInterceptor(
	baseLog *logger.Logger,
	audit AuditService,
	notifications NotificationService,
	users repos.UserRepo,
	lockers repos.LockerRepo,
) *ActionInterceptor {
	return &ActionInterceptor{
		log:           baseLog.With("service", "ActionInterceptor"),
		audit:         audit,
		notifications: notifications,
		users:         users,
		lockers:       lockers,
	}
}

// Intercept executes op and applies the audit-and-notify contract around it.
// The details template may be empty, in which case it is derived from the
// tag and entity kind. The original error (or result) always propagates
// unchanged.
func Intercept[T any](ctx context.Context, i *ActionInterceptor, tag, details string, kind EntityKind, op func(ctx context.Context) (T, error)) (T, error) {
	if details == "" {
		details = fmt.Sprintf("Action: %s, Target: %s", tag, kind)
	}

	result, err := op(ctx)
	if err != nil {
		i.appendRecord(ctx, tag, details+" - Error: "+err.Error())
		return result, err
	}

	i.appendRecord(ctx, tag, details)
	i.dispatch(ctx, tag, kind, any(result))
	return result, nil
}

// appendRecord writes the audit entry. A failure here is logged and
// swallowed: it must never mask the outcome of the primary operation.
func (i *ActionInterceptor) appendRecord(ctx context.Context, tag, details string) {
	if i == nil || i.audit == nil {
		return
	}
	record := &types.AuditRecord{
		Action:    tag,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}
	if _, err := i.audit.Append(ctx, record); err != nil {
		i.log.Error("Failed to append audit record", "action", tag, "error", err)
	}
}

// policyKey identifies a notification policy entry.
type policyKey struct {
	tag  string
	kind EntityKind
}

// notificationPolicies is the static table deciding which successfully
// audited actions also notify, whom, and with what message.
var notificationPolicies = map[policyKey]func(ctx context.Context, i *ActionInterceptor, result any){
	{ActionUserRegistered, EntityKindUser}: func(ctx context.Context, i *ActionInterceptor, result any) {
		user, ok := result.(*types.User)
		if !ok || user == nil {
			return
		}
		i.notifyAdmins(ctx, "New user registered", "New user registered: "+user.Email, types.NotificationTypeSystem)
	},
	{ActionLockerRegistered, EntityKindLocker}: func(ctx context.Context, i *ActionInterceptor, result any) {
		locker, ok := result.(*types.Locker)
		if !ok || locker == nil {
			return
		}
		i.notifyAdmins(ctx, "New locker registered", "New locker registered: "+locker.Number, types.NotificationTypeSystem)
	},
	{ActionPackageRegistered, EntityKindPackage}: func(ctx context.Context, i *ActionInterceptor, result any) {
		pkg, ok := result.(*types.Package)
		if !ok || pkg == nil {
			return
		}
		locker, err := i.lockers.GetByID(ctx, nil, pkg.LockerID)
		if err != nil || locker == nil {
			i.log.Warn("Could not resolve locker for package notification", "locker_id", pkg.LockerID, "error", err)
			return
		}
		i.notifyUser(ctx, pkg.UserID,
			"New package registered",
			"New package registered for you in locker "+locker.Number,
			types.NotificationTypePackage)
	},
}

// dispatch consults the policy table. Every failure on this path is logged
// and swallowed.
func (i *ActionInterceptor) dispatch(ctx context.Context, tag string, kind EntityKind, result any) {
	if i == nil || i.notifications == nil {
		return
	}
	policy, ok := notificationPolicies[policyKey{tag: tag, kind: kind}]
	if !ok {
		return
	}
	policy(ctx, i, result)
}

// notifyAdmins sends one notification to every administrator account. When
// the admin lookup is unavailable the dispatch is skipped.
func (i *ActionInterceptor) notifyAdmins(ctx context.Context, title, message string, notificationType types.NotificationType) {
	admins, err := i.users.GetByRole(ctx, nil, types.UserRoleAdmin)
	if err != nil {
		i.log.Warn("Admin lookup failed, skipping notification", "title", title, "error", err)
		return
	}
	for _, admin := range admins {
		i.notifyUser(ctx, admin.ID, title, message, notificationType)
	}
}

func (i *ActionInterceptor) notifyUser(ctx context.Context, userID uuid.UUID, title, message string, notificationType types.NotificationType) {
	notification := &types.Notification{
		Title:   title,
		Message: message,
		Type:    notificationType,
		UserID:  userID,
	}
	if _, err := i.notifications.Create(ctx, notification); err != nil {
		i.log.Error("Failed to create notification", "title", title, "error", err)
	}
}
