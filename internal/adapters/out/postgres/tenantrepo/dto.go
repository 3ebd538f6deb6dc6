// Package tenantrepo persists tenants. Settings travel as a jsonb column:
// toggles and templates change shape more often than the schema should.
package tenantrepo

import (
	"encoding/json"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/core/domain/model/tenant"

	"github.com/google/uuid"
)

// TenantDTO is the database row for one tenant. Slug is globally unique:
// it routes incoming webhooks to the tenant.
type TenantDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:160"`
	Slug     string    `gorm:"size:80;uniqueIndex"`
	Address  string
	Active   bool
	Settings []byte `gorm:"type:jsonb"`
}

// TableName overrides GORM's default naming to use "tenants".
func (TenantDTO) TableName() string {
	return "tenants"
}

// settingsDTO is the jsonb shape of tenant.Settings. Durations are stored
// as seconds so the column stays readable in psql.
type settingsDTO struct {
	NotificationsEnabled  bool              `json:"notifications_enabled"`
	Notify                map[string]bool   `json:"notify"`
	Templates             map[string]string `json:"templates"`
	PickupExpirySeconds   int64             `json:"pickup_expiry_seconds"`
	WebhookSecret         string            `json:"webhook_secret"`
	TrackingLinkBase      string            `json:"tracking_link_base"`
	AllowCodCompletion    bool              `json:"allow_cod_completion"`
	AutoCompleteOnPayment bool              `json:"auto_complete_on_payment"`
}

func fromDomain(aggregate *tenant.Tenant) (TenantDTO, error) {
	settings := aggregate.Settings()

	notify := make(map[string]bool, len(settings.Notify))
	for kind, enabled := range settings.Notify {
		notify[string(kind)] = enabled
	}
	templates := make(map[string]string, len(settings.Templates))
	for kind, tpl := range settings.Templates {
		templates[string(kind)] = tpl
	}

	raw, err := json.Marshal(settingsDTO{
		NotificationsEnabled:  settings.NotificationsEnabled,
		Notify:                notify,
		Templates:             templates,
		PickupExpirySeconds:   int64(settings.PickupExpiry / time.Second),
		WebhookSecret:         settings.WebhookSecret,
		TrackingLinkBase:      settings.TrackingLinkBase,
		AllowCodCompletion:    settings.AllowCodCompletion,
		AutoCompleteOnPayment: settings.AutoCompleteOnPayment,
	})
	if err != nil {
		return TenantDTO{}, err
	}

	return TenantDTO{
		ID:       aggregate.ID().Bytes(),
		Name:     aggregate.Name(),
		Slug:     aggregate.Slug(),
		Address:  aggregate.Address(),
		Active:   aggregate.IsActive(),
		Settings: raw,
	}, nil
}

func toDomain(dto TenantDTO) (*tenant.Tenant, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var raw settingsDTO
	if len(dto.Settings) > 0 {
		if err := json.Unmarshal(dto.Settings, &raw); err != nil {
			return nil, err
		}
	}

	notify := make(map[notification.EventKind]bool, len(raw.Notify))
	for kind, enabled := range raw.Notify {
		notify[notification.EventKind(kind)] = enabled
	}
	templates := make(map[notification.EventKind]string, len(raw.Templates))
	for kind, tpl := range raw.Templates {
		templates[notification.EventKind(kind)] = tpl
	}

	settings := tenant.Settings{
		NotificationsEnabled:  raw.NotificationsEnabled,
		Notify:                notify,
		Templates:             templates,
		PickupExpiry:          time.Duration(raw.PickupExpirySeconds) * time.Second,
		WebhookSecret:         raw.WebhookSecret,
		TrackingLinkBase:      raw.TrackingLinkBase,
		AllowCodCompletion:    raw.AllowCodCompletion,
		AutoCompleteOnPayment: raw.AutoCompleteOnPayment,
	}

	return tenant.RestoreTenant(id, dto.Name, dto.Slug, dto.Address, dto.Active, settings)
}
