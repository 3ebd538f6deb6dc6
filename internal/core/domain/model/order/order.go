package order

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"flowlog/internal/core/domain/model/kernel"
	"flowlog/internal/core/domain/model/notification"
	"flowlog/internal/pkg/errs"
	"flowlog/internal/pkg/guard"
)

const (
	// orderCodePrefix is prepended to every generated human-facing order code.
	orderCodePrefix = "PED-"
	// orderCodeLength is the number of random characters after the prefix.
	orderCodeLength = 5
	// orderCodeAlphabet excludes ambiguous characters (0/O, 1/I/L).
	orderCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
	// pickupCodeDigits is the length of the numeric code a customer presents at pickup.
	pickupCodeDigits = 4
)

// Domain errors for order operations.
var (
	// ErrTrackingCodeIsRequired is returned when shipping without a tracking code.
	ErrTrackingCodeIsRequired = errs.NewValueIsRequiredError("trackingCode")
	// ErrDeliveryAddressIsRequired is returned when a shipment-based delivery type has no address.
	ErrDeliveryAddressIsRequired = errs.NewValueIsRequiredError("deliveryAddress")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")
)

// CompletionPolicy carries the tenant flags that decide when a delivered or
// picked-up order may move to completed. The zero value completes only orders
// that are already paid.
type CompletionPolicy struct {
	// AllowCashOnDelivery completes an order on successful handover even if
	// the payment is still pending (payment happens at the door).
	AllowCashOnDelivery bool
	// AutoCompleteOnPayment completes an order when a payment confirmation
	// arrives after the handover already succeeded.
	AutoCompleteOnPayment bool
}

// Transition is the record of one applied state change. Mutating methods on
// Order return it so callers can append history and build the notification
// snapshot from a single source of truth. A nil *Transition from a mutating
// method means the order was already in the target state and nothing changed.
//
// Kind may be empty for administrative changes (e.g. switching the delivery
// type) that write history but notify nobody.
type Transition struct {
	Kind notification.EventKind
	Note string

	OrderStatusFrom    OrderStatus
	OrderStatusTo      OrderStatus
	PaymentStatusFrom  PaymentStatus
	PaymentStatusTo    PaymentStatus
	DeliveryStatusFrom DeliveryStatus
	DeliveryStatusTo   DeliveryStatus
}

// Order is the aggregate root of the lifecycle engine. It owns three
// orthogonal status dimensions (order, payment, delivery) and is the only
// place allowed to move any of them. Every state change goes through a
// mutating method that re-validates the transition against the current
// state, so a stale caller racing on the same row cannot corrupt the
// lifecycle once the row lock is held.
//
// Business rules:
//   - Terminal order statuses (completed, cancelled, returned) reject all
//     further lifecycle changes except ReturnOrder on completed.
//   - Delivery transitions are constrained per delivery type: pickup orders
//     never ship, shipment orders never get a pickup code.
//   - Re-applying an operation whose target state already holds is a no-op:
//     the method returns (nil, nil) and the caller must not write history or
//     enqueue a notification.
type Order struct {
	id         kernel.UUID
	tenantID   kernel.UUID
	customerID kernel.UUID
	// sellerID is the staff member who registered the order, nil for
	// orders created by integrations.
	sellerID *kernel.UUID

	code       string
	totalValue kernel.Money
	notes      string

	status         OrderStatus
	paymentStatus  PaymentStatus
	deliveryType   DeliveryType
	deliveryStatus DeliveryStatus

	deliveryAddress  string
	trackingCode     string
	pickupCode       string
	deliveryAttempts int

	cancelReason string
	returnReason string

	createdAt   time.Time
	expiresAt   *time.Time
	shippedAt   *time.Time
	deliveredAt *time.Time
	cancelledAt *time.Time
	returnedAt  *time.Time

	// version counts applied transitions; the repository uses it for
	// optimistic detection of stale writes outside the locked path.
	version int

	guard guard.ConstructorGuard
}

// NewOrder creates a fresh Order in the pending/pending/pending state and
// generates its human-facing code. This is the only way to create a valid
// new Order instance.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - tenantID: Owning tenant (must be valid UUID)
//   - customerID: Customer placing the order (must be valid UUID)
//   - sellerID: Staff member registering the order, nil for integrations
//   - totalValue: Order total in centavos (must be constructed Money)
//   - deliveryType: How the order reaches the customer
//   - deliveryAddress: Required unless the delivery type is pickup
//   - notes: Free-form operator notes, may be empty
//   - now: Creation timestamp
//
// Returns:
//   - *Order: A fully initialized order ready for lifecycle operations
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerID kernel.UUID,
	sellerID *kernel.UUID,
	totalValue kernel.Money,
	deliveryType DeliveryType,
	deliveryAddress string,
	notes string,
	now time.Time,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setCustomerID(customerID),
		order.setSellerID(sellerID),
		order.setTotalValue(totalValue),
		order.setDeliveryType(deliveryType, deliveryAddress),
	); err != nil {
		return nil, err
	}

	code, err := generateOrderCode()
	if err != nil {
		return nil, err
	}

	order.code = code
	order.notes = strings.TrimSpace(notes)
	order.status = OrderStatusPending
	order.paymentStatus = PaymentStatusPending
	order.deliveryStatus = DeliveryStatusPending
	order.createdAt = now

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// It trusts the stored state and performs only identity validation, so a
// row written by an older release restores without re-running the stricter
// construction rules.
func RestoreOrder(
	id kernel.UUID,
	tenantID kernel.UUID,
	customerID kernel.UUID,
	sellerID *kernel.UUID,
	code string,
	totalValue kernel.Money,
	notes string,
	status OrderStatus,
	paymentStatus PaymentStatus,
	deliveryType DeliveryType,
	deliveryStatus DeliveryStatus,
	deliveryAddress string,
	trackingCode string,
	pickupCode string,
	deliveryAttempts int,
	cancelReason string,
	returnReason string,
	createdAt time.Time,
	expiresAt *time.Time,
	shippedAt *time.Time,
	deliveredAt *time.Time,
	cancelledAt *time.Time,
	returnedAt *time.Time,
	version int,
) (*Order, error) {
	order := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTenantID(tenantID),
		order.setCustomerID(customerID),
		order.setSellerID(sellerID),
		order.setTotalValue(totalValue),
	); err != nil {
		return nil, err
	}

	if code == "" {
		return nil, errs.NewValueIsRequiredError("code")
	}
	if err := errors.Join(status.Validate(), paymentStatus.Validate(),
		deliveryType.Validate(), deliveryStatus.Validate()); err != nil {
		return nil, err
	}

	order.code = code
	order.notes = notes
	order.status = status
	order.paymentStatus = paymentStatus
	order.deliveryType = deliveryType
	order.deliveryStatus = deliveryStatus
	order.deliveryAddress = deliveryAddress
	order.trackingCode = trackingCode
	order.pickupCode = pickupCode
	order.deliveryAttempts = deliveryAttempts
	order.cancelReason = cancelReason
	order.returnReason = returnReason
	order.createdAt = createdAt
	order.expiresAt = expiresAt
	order.shippedAt = shippedAt
	order.deliveredAt = deliveredAt
	order.cancelledAt = cancelledAt
	order.returnedAt = returnedAt
	order.version = version

	return order, nil
}

// Validate checks if the Order was properly constructed via a constructor.
// The zero value of Order is invalid and will fail this validation.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// EnsureTenant rejects cross-tenant access: every command handler calls it
// after loading the aggregate with the tenant id the request claimed.
func (o *Order) EnsureTenant(tenantID kernel.UUID) error {
	if !o.tenantID.IsEqual(tenantID) {
		return errs.NewTenantMismatchError("order", tenantID.String())
	}
	return nil
}

// Confirm moves a pending order to confirmed. Already-confirmed orders are
// a no-op; terminal orders are rejected.
func (o *Order) Confirm() (*Transition, error) {
	if o.status == OrderStatusConfirmed {
		return nil, nil
	}
	if o.status != OrderStatusPending {
		return nil, errs.NewInvalidTransitionError("confirm", o.status.String())
	}

	tr := o.begin(notification.KindOrderConfirmed)
	o.status = OrderStatusConfirmed
	return o.commit(tr), nil
}

// Ship dispatches a shipment-based order with the carrier tracking code.
// The tracking code is mandatory for every shipment type; pickup orders are
// rejected with an invalid-delivery-type error. A pending order is
// auto-confirmed on ship.
func (o *Order) Ship(trackingCode string, now time.Time) (*Transition, error) {
	if err := o.ensureOpen("ship"); err != nil {
		return nil, err
	}
	if o.deliveryStatus == DeliveryStatusShipped {
		return nil, nil
	}

	trackingCode = strings.TrimSpace(trackingCode)
	if trackingCode == "" {
		return nil, ErrTrackingCodeIsRequired
	}

	next, err := nextDeliveryStatus(opShip, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindOrderShipped)
	if o.status == OrderStatusPending {
		o.status = OrderStatusConfirmed
	}
	o.deliveryStatus = next
	o.trackingCode = trackingCode
	o.shippedAt = &now
	return o.commit(tr), nil
}

// MarkOutForDelivery records that the carrier handed the package to the
// last-mile courier.
func (o *Order) MarkOutForDelivery() (*Transition, error) {
	if err := o.ensureOpen("mark out for delivery"); err != nil {
		return nil, err
	}
	if o.deliveryStatus == DeliveryStatusOutForDelivery {
		return nil, nil
	}

	next, err := nextDeliveryStatus(opOutForDelivery, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindOutForDelivery)
	o.deliveryStatus = next
	return o.commit(tr), nil
}

// MarkReadyForPickup announces a pickup order as waiting at the store.
// A 4-digit pickup code is generated on the first call and the pickup
// window deadline is set to now + expiry. A pending order is auto-confirmed.
// Calling it again while the order is still waiting is a no-op, so a double
// click on the storefront produces exactly one history row and one
// notification.
func (o *Order) MarkReadyForPickup(now time.Time, expiry time.Duration) (*Transition, error) {
	if err := o.ensureOpen("mark ready for pickup"); err != nil {
		return nil, err
	}
	if o.deliveryStatus == DeliveryStatusReadyForPickup {
		return nil, nil
	}

	next, err := nextDeliveryStatus(opReadyForPickup, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	if o.pickupCode == "" {
		code, err := generatePickupCode()
		if err != nil {
			return nil, err
		}
		o.pickupCode = code
	}

	tr := o.begin(notification.KindReadyForPickup)
	if o.status == OrderStatusPending {
		o.status = OrderStatusConfirmed
	}
	o.deliveryStatus = next
	deadline := now.Add(expiry)
	o.expiresAt = &deadline
	return o.commit(tr), nil
}

// MarkDelivered records a successful handover for a shipment-based order.
// The order completes when the payment is already settled or the tenant
// allows cash on delivery; otherwise it stays confirmed until the payment
// confirmation arrives.
func (o *Order) MarkDelivered(policy CompletionPolicy, now time.Time) (*Transition, error) {
	if err := o.ensureOpen("mark delivered"); err != nil {
		return nil, err
	}
	if o.deliveryStatus == DeliveryStatusDelivered {
		return nil, nil
	}

	next, err := nextDeliveryStatus(opDeliver, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindOrderDelivered)
	o.deliveryStatus = next
	o.deliveredAt = &now
	o.completeIfSettled(policy)
	return o.commit(tr), nil
}

// MarkPickedUp records that the customer collected a pickup order. The
// pickup deadline is cleared and completion follows the same policy as
// MarkDelivered.
func (o *Order) MarkPickedUp(policy CompletionPolicy, now time.Time) (*Transition, error) {
	if err := o.ensureOpen("mark picked up"); err != nil {
		return nil, err
	}
	if o.deliveryStatus == DeliveryStatusPickedUp {
		return nil, nil
	}

	next, err := nextDeliveryStatus(opPickUp, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindPickedUp)
	o.deliveryStatus = next
	o.deliveredAt = &now
	o.expiresAt = nil
	o.completeIfSettled(policy)
	return o.commit(tr), nil
}

// MarkFailedAttempt records one failed delivery attempt with the carrier's
// reason. The order stays open: a new Ship or MarkDelivered can follow.
func (o *Order) MarkFailedAttempt(reason string) (*Transition, error) {
	if err := o.ensureOpen("mark failed attempt"); err != nil {
		return nil, err
	}

	next, err := nextDeliveryStatus(opFailAttempt, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindDeliveryFailed)
	tr.Note = strings.TrimSpace(reason)
	o.deliveryStatus = next
	o.deliveryAttempts++
	return o.commit(tr), nil
}

// Cancel moves a non-terminal order to cancelled. A paid order is refunded
// only when the caller sets the refunded flag. Already-cancelled orders are
// a no-op; completed and returned orders are rejected.
func (o *Order) Cancel(reason string, refunded bool, now time.Time) (*Transition, error) {
	if o.status == OrderStatusCancelled {
		return nil, nil
	}
	if o.status == OrderStatusCompleted || o.status == OrderStatusReturned {
		return nil, errs.NewInvalidTransitionError("cancel", o.status.String())
	}

	tr := o.begin(notification.KindOrderCancelled)
	tr.Note = strings.TrimSpace(reason)
	o.status = OrderStatusCancelled
	o.cancelReason = tr.Note
	o.cancelledAt = &now
	if refunded && o.paymentStatus == PaymentStatusPaid {
		o.paymentStatus = PaymentStatusRefunded
	}
	return o.commit(tr), nil
}

// ReturnOrder moves a completed order to returned. The refund flag moves a
// paid payment to refunded in the same transition; the caller can detect
// the payment change on the returned Transition and notify separately.
func (o *Order) ReturnOrder(reason string, refund bool, now time.Time) (*Transition, error) {
	if o.status == OrderStatusReturned {
		return nil, nil
	}
	if o.status != OrderStatusCompleted {
		return nil, errs.NewInvalidTransitionError("return", o.status.String())
	}

	tr := o.begin(notification.KindOrderReturned)
	tr.Note = strings.TrimSpace(reason)
	o.status = OrderStatusReturned
	o.returnReason = tr.Note
	o.returnedAt = &now
	if refund && o.paymentStatus == PaymentStatusPaid {
		o.paymentStatus = PaymentStatusRefunded
	}
	return o.commit(tr), nil
}

// ChangeDeliveryType switches how a still-pending order will reach the
// customer. The delivery state machine restarts: tracking code, pickup code
// and the pickup deadline are cleared. The returned Transition carries no
// event kind, so the change writes history but notifies nobody.
func (o *Order) ChangeDeliveryType(newType DeliveryType, deliveryAddress string) (*Transition, error) {
	if o.status != OrderStatusPending {
		return nil, errs.NewInvalidTransitionError("change delivery type", o.status.String())
	}
	if newType == o.deliveryType {
		return nil, nil
	}

	tr := o.begin("")
	if err := o.setDeliveryType(newType, deliveryAddress); err != nil {
		return nil, err
	}
	o.deliveryStatus = DeliveryStatusPending
	o.trackingCode = ""
	o.pickupCode = ""
	o.expiresAt = nil
	return o.commit(tr), nil
}

// MarkPaid settles the payment. It is shared by the manual "mark as paid"
// action and the webhook reconciler, so replayed gateway events land here
// and turn into the already-paid no-op. A pending order is auto-confirmed;
// the order completes only when the tenant opted into completion on payment
// and the handover already succeeded.
func (o *Order) MarkPaid(policy CompletionPolicy) (*Transition, error) {
	if o.paymentStatus == PaymentStatusPaid {
		return nil, nil
	}
	if o.status == OrderStatusCancelled || o.status == OrderStatusReturned {
		return nil, errs.NewInvalidTransitionError("mark as paid", o.status.String())
	}

	tr := o.begin(notification.KindPaymentReceived)
	o.paymentStatus = PaymentStatusPaid
	if o.status == OrderStatusPending {
		o.status = OrderStatusConfirmed
	}
	if policy.AutoCompleteOnPayment {
		o.completeIfSettled(policy)
	}
	return o.commit(tr), nil
}

// MarkPaymentFailed records a gateway payment failure. A settled payment is
// never downgraded: failures arriving after the charge succeeded are a
// no-op.
func (o *Order) MarkPaymentFailed() (*Transition, error) {
	if o.paymentStatus == PaymentStatusFailed || o.paymentStatus == PaymentStatusPaid {
		return nil, nil
	}

	tr := o.begin(notification.KindPaymentFailed)
	o.paymentStatus = PaymentStatusFailed
	return o.commit(tr), nil
}

// RefundPayment moves a paid payment to refunded. Only settled payments can
// be refunded.
func (o *Order) RefundPayment() (*Transition, error) {
	if o.paymentStatus == PaymentStatusRefunded {
		return nil, nil
	}
	if o.paymentStatus != PaymentStatusPaid {
		return nil, errs.NewInvalidTransitionError("refund payment", o.paymentStatus.String())
	}

	tr := o.begin(notification.KindPaymentRefunded)
	o.paymentStatus = PaymentStatusRefunded
	return o.commit(tr), nil
}

// Expire closes a pickup order whose window elapsed: delivery moves to
// expired and the order is cancelled with an explanatory reason. The sweep
// and a racing manual action converge on the same row lock, so whichever
// applies second sees the no-op or an invalid transition and backs off.
func (o *Order) Expire(now time.Time) (*Transition, error) {
	if o.deliveryStatus == DeliveryStatusExpired {
		return nil, nil
	}

	next, err := nextDeliveryStatus(opExpire, o.deliveryType, o.deliveryStatus)
	if err != nil {
		return nil, err
	}

	tr := o.begin(notification.KindOrderExpired)
	tr.Note = "pickup window expired"
	o.deliveryStatus = next
	o.status = OrderStatusCancelled
	o.cancelReason = tr.Note
	o.cancelledAt = &now
	o.expiresAt = nil
	// the code only means something while the order can still be collected
	o.pickupCode = ""
	return o.commit(tr), nil
}

// IsEqual compares two orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	if other == nil {
		return false
	}
	return o.id.IsEqual(other.id)
}

// ID returns the unique identifier of the order.
func (o *Order) ID() kernel.UUID { return o.id }

// TenantID returns the owning tenant.
func (o *Order) TenantID() kernel.UUID { return o.tenantID }

// CustomerID returns the customer the order belongs to.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// SellerID returns the registering staff member, nil for integrations.
func (o *Order) SellerID() *kernel.UUID { return o.sellerID }

// Code returns the human-facing order code ("PED-" prefixed).
func (o *Order) Code() string { return o.code }

// TotalValue returns the order total.
func (o *Order) TotalValue() kernel.Money { return o.totalValue }

// Notes returns free-form operator notes.
func (o *Order) Notes() string { return o.notes }

// Status returns the order status dimension.
func (o *Order) Status() OrderStatus { return o.status }

// PaymentStatus returns the payment status dimension.
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }

// DeliveryType returns how the order reaches the customer.
func (o *Order) DeliveryType() DeliveryType { return o.deliveryType }

// DeliveryStatus returns the delivery status dimension.
func (o *Order) DeliveryStatus() DeliveryStatus { return o.deliveryStatus }

// DeliveryAddress returns the destination address, empty for pickup.
func (o *Order) DeliveryAddress() string { return o.deliveryAddress }

// TrackingCode returns the carrier tracking code, empty until shipped.
func (o *Order) TrackingCode() string { return o.trackingCode }

// PickupCode returns the 4-digit code the customer presents at the counter.
func (o *Order) PickupCode() string { return o.pickupCode }

// DeliveryAttempts returns how many delivery attempts failed so far.
func (o *Order) DeliveryAttempts() int { return o.deliveryAttempts }

// CancelReason returns why the order was cancelled, empty otherwise.
func (o *Order) CancelReason() string { return o.cancelReason }

// ReturnReason returns why the order was returned, empty otherwise.
func (o *Order) ReturnReason() string { return o.returnReason }

// CreatedAt returns the creation timestamp.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ExpiresAt returns the pickup window deadline, nil when not waiting.
func (o *Order) ExpiresAt() *time.Time { return o.expiresAt }

// ShippedAt returns when the order was shipped, nil before that.
func (o *Order) ShippedAt() *time.Time { return o.shippedAt }

// DeliveredAt returns when the handover succeeded, nil before that.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// CancelledAt returns when the order was cancelled, nil otherwise.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// ReturnedAt returns when the order was returned, nil otherwise.
func (o *Order) ReturnedAt() *time.Time { return o.returnedAt }

// Version returns the number of transitions applied to the aggregate.
func (o *Order) Version() int { return o.version }

func (o *Order) ensureOpen(operation string) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(operation, o.status.String())
	}
	return nil
}

func (o *Order) completeIfSettled(policy CompletionPolicy) {
	handedOver := o.deliveryStatus == DeliveryStatusDelivered ||
		o.deliveryStatus == DeliveryStatusPickedUp
	settled := o.paymentStatus == PaymentStatusPaid || policy.AllowCashOnDelivery
	if handedOver && settled && !o.status.IsTerminal() {
		o.status = OrderStatusCompleted
	}
}

// begin captures the pre-transition state; commit stamps the post-state and
// bumps the version. Every mutating method wraps its changes between the two.
func (o *Order) begin(kind notification.EventKind) *Transition {
	return &Transition{
		Kind:               kind,
		OrderStatusFrom:    o.status,
		PaymentStatusFrom:  o.paymentStatus,
		DeliveryStatusFrom: o.deliveryStatus,
	}
}

func (o *Order) commit(tr *Transition) *Transition {
	tr.OrderStatusTo = o.status
	tr.PaymentStatusTo = o.paymentStatus
	tr.DeliveryStatusTo = o.deliveryStatus
	o.version++
	return tr
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("id", err)
	}
	o.id = id
	return nil
}

func (o *Order) setTenantID(tenantID kernel.UUID) error {
	if err := tenantID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("tenantID", err)
	}
	o.tenantID = tenantID
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerID", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setSellerID(sellerID *kernel.UUID) error {
	if sellerID == nil {
		o.sellerID = nil
		return nil
	}
	if err := sellerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("sellerID", err)
	}
	o.sellerID = sellerID
	return nil
}

func (o *Order) setTotalValue(totalValue kernel.Money) error {
	// Money needs no construction guard; any value is a legal total.
	o.totalValue = totalValue
	return nil
}

func (o *Order) setDeliveryType(deliveryType DeliveryType, deliveryAddress string) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	deliveryAddress = strings.TrimSpace(deliveryAddress)
	if deliveryType.RequiresAddress() && deliveryAddress == "" {
		return ErrDeliveryAddressIsRequired
	}
	o.deliveryType = deliveryType
	o.deliveryAddress = deliveryAddress
	return nil
}

func generateOrderCode() (string, error) {
	chars := make([]byte, orderCodeLength)
	for i := range chars {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(orderCodeAlphabet))))
		if err != nil {
			return "", err
		}
		chars[i] = orderCodeAlphabet[n.Int64()]
	}
	return orderCodePrefix + string(chars), nil
}

func generatePickupCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < pickupCodeDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", pickupCodeDigits, n.Int64()), nil
}
