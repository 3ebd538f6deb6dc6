package tenant

import (
	"time"

	"flowlog/internal/core/domain/model/notification"
)

// DefaultPickupExpiry is how long a pickup order waits at the counter before
// the expiry sweep cancels it, unless the tenant configures otherwise.
const DefaultPickupExpiry = 72 * time.Hour

// Settings holds the per-tenant notification toggles, message templates and
// lifecycle policy flags. It is a plain value: a zero Settings disables
// everything, DefaultSettings returns the out-of-the-box configuration new
// tenants start with.
type Settings struct {
	// NotificationsEnabled is the master switch; when false every dispatch
	// is recorded as blocked regardless of the per-kind toggles.
	NotificationsEnabled bool

	// Notify maps each event kind to whether the tenant wants customers
	// notified about it. Kinds missing from the map are not notified.
	Notify map[notification.EventKind]bool

	// Templates maps event kinds to custom message templates. Kinds missing
	// from the map fall back to the built-in default template.
	Templates map[notification.EventKind]string

	// PickupExpiry is the pickup window length; zero means DefaultPickupExpiry.
	PickupExpiry time.Duration

	// WebhookSecret signs incoming payment gateway webhooks (HMAC-SHA256).
	// A tenant with an empty secret rejects all webhooks.
	WebhookSecret string

	// TrackingLinkBase is the public tracking page base URL; the order code
	// is appended to build the {link_rastreio} placeholder.
	TrackingLinkBase string

	// AllowCodCompletion completes orders on successful handover even with
	// the payment still pending (cash on delivery).
	AllowCodCompletion bool

	// AutoCompleteOnPayment completes orders when the payment confirmation
	// arrives after the handover already succeeded.
	AutoCompleteOnPayment bool
}

// DefaultSettings returns the configuration a fresh tenant starts with:
// notifications on for customer-relevant kinds, confirmations and pickups
// quiet (the created/ready messages already cover them), built-in templates.
func DefaultSettings() Settings {
	return Settings{
		NotificationsEnabled: false,
		Notify: map[notification.EventKind]bool{
			notification.KindOrderCreated:    true,
			notification.KindOrderConfirmed:  false,
			notification.KindPaymentReceived: true,
			notification.KindPaymentFailed:   true,
			notification.KindPaymentRefunded: true,
			notification.KindOrderShipped:    true,
			notification.KindOutForDelivery:  true,
			notification.KindOrderDelivered:  true,
			notification.KindDeliveryFailed:  true,
			notification.KindReadyForPickup:  true,
			notification.KindPickedUp:        false,
			notification.KindOrderExpired:    true,
			notification.KindOrderCancelled:  true,
			notification.KindOrderReturned:   true,
		},
		Templates:    map[notification.EventKind]string{},
		PickupExpiry: DefaultPickupExpiry,
	}
}

// CanNotify reports whether a message of the given kind should leave the
// building for this tenant.
func (s Settings) CanNotify(kind notification.EventKind) bool {
	return s.NotificationsEnabled && s.Notify[kind]
}

// TemplateFor returns the tenant's template for the kind, falling back to
// the built-in default. Templates use {placeholder} markers; see the
// snapshot builder for the substitution vocabulary.
func (s Settings) TemplateFor(kind notification.EventKind) string {
	if tpl, ok := s.Templates[kind]; ok && tpl != "" {
		return tpl
	}
	return defaultTemplates[kind]
}

// PickupWindow returns the configured pickup expiry, defaulting when unset.
func (s Settings) PickupWindow() time.Duration {
	if s.PickupExpiry <= 0 {
		return DefaultPickupExpiry
	}
	return s.PickupExpiry
}

// Messages are written in Brazilian Portuguese because that is where the
// tenants operate; the copy mirrors what stores were sending manually before.
var defaultTemplates = map[notification.EventKind]string{
	notification.KindOrderCreated: "Olá {nome}! 🎉\n\n" +
		"Seu pedido *{codigo}* foi recebido!\n" +
		"Valor: R$ {valor}\n\n" +
		"Acompanhe em: {link_rastreio}\n\n" +
		"_{loja}_",
	notification.KindOrderConfirmed: "Olá {nome}! ✅\n\n" +
		"Seu pedido *{codigo}* foi confirmado!\n\n" +
		"_{loja}_",
	notification.KindPaymentReceived: "Olá {nome}! 💰\n\n" +
		"Pagamento do pedido *{codigo}* confirmado!\n" +
		"Valor: R$ {valor}\n\n" +
		"_{loja}_",
	notification.KindPaymentFailed: "Olá {nome}!\n\n" +
		"O pagamento do pedido *{codigo}* não foi aprovado.\n\n" +
		"Tente novamente ou entre em contato.\n" +
		"_{loja}_",
	notification.KindPaymentRefunded: "Olá {nome}!\n\n" +
		"O valor de R$ {valor} do pedido *{codigo}* foi estornado.\n\n" +
		"_{loja}_",
	notification.KindOrderShipped: "Olá {nome}! 📦\n\n" +
		"Seu pedido *{codigo}* foi enviado!\n\n" +
		"{rastreio_info}" +
		"Acompanhe em: {link_rastreio}\n\n" +
		"_{loja}_",
	notification.KindOutForDelivery: "Olá {nome}! 🚚\n\n" +
		"Seu pedido *{codigo}* saiu para entrega!\n\n" +
		"_{loja}_",
	notification.KindOrderDelivered: "Olá {nome}! ✅\n\n" +
		"Seu pedido *{codigo}* foi entregue!\n\n" +
		"Obrigado! 😊\n" +
		"_{loja}_",
	notification.KindDeliveryFailed: "Olá {nome}! ⚠️\n\n" +
		"Tentamos entregar o pedido *{codigo}* mas não conseguimos.\n" +
		"Tentativa: {tentativa}\n\n" +
		"Verifique o endereço ou entre em contato.\n" +
		"_{loja}_",
	notification.KindReadyForPickup: "Olá {nome}! 🏬\n\n" +
		"Seu pedido *{codigo}* está pronto para retirada!\n" +
		"Valor: R$ {valor}\n\n" +
		"🔑 *Código de retirada: {pickup_code}*\n\n" +
		"📍 Retire em:\n{endereco}\n\n" +
		"Apresente o código na loja.\n" +
		"_{loja}_",
	notification.KindPickedUp: "Olá {nome}! ✅\n\n" +
		"Pedido *{codigo}* retirado!\n\n" +
		"Obrigado! 😊\n" +
		"_{loja}_",
	notification.KindOrderExpired: "Olá {nome}! ⚠️\n\n" +
		"O prazo para retirada do pedido *{codigo}* expirou.\n\n" +
		"Entre em contato para verificar as opções.\n" +
		"_{loja}_",
	notification.KindOrderCancelled: "Olá {nome}!\n\n" +
		"Seu pedido *{codigo}* foi cancelado.\n" +
		"{motivo_info}" +
		"Em caso de dúvidas, entre em contato.\n" +
		"_{loja}_",
	notification.KindOrderReturned: "Olá {nome}!\n\n" +
		"Devolução do pedido *{codigo}* registrada.\n" +
		"{motivo_info}\n" +
		"_{loja}_",
}
