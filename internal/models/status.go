package models

// OrderStatus is the operational lifecycle stage of an order.
type OrderStatus string

const (
	StatusPending          OrderStatus = "pending"
	StatusConfirmed        OrderStatus = "confirmed"
	StatusPickupScheduled  OrderStatus = "pickup_scheduled"
	StatusPickedUp         OrderStatus = "picked_up"
	StatusInProcess        OrderStatus = "in_process"
	StatusQualityCheck     OrderStatus = "quality_check"
	StatusReadyForDelivery OrderStatus = "ready_for_delivery"
	StatusOutForDelivery   OrderStatus = "out_for_delivery"
	StatusDelivered        OrderStatus = "delivered"
	StatusCancelled        OrderStatus = "cancelled"
)

// orderStatusFlow is the happy path from intake to delivery, in step order.
// Cancellation sits outside the flow and is handled by CanTransition.
var orderStatusFlow = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPickupScheduled,
	StatusPickedUp,
	StatusInProcess,
	StatusQualityCheck,
	StatusReadyForDelivery,
	StatusOutForDelivery,
	StatusDelivered,
}

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	if s == StatusCancelled {
		return true
	}
	return s.stepIndex() >= 0
}

// Terminal reports whether no further transition is allowed from s.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s OrderStatus) stepIndex() int {
	for i, st := range orderStatusFlow {
		if st == s {
			return i
		}
	}
	return -1
}

// StepIndex returns the position of s in the operational flow (0 = pending,
// 8 = delivered), or -1 for cancelled and unknown values.
func (s OrderStatus) StepIndex() int {
	return s.stepIndex()
}

// CanTransition reports whether an order may move from one status to the
// next. The flow only advances one step at a time; cancelled is reachable
// from every non-terminal status; delivered and cancelled are terminal.
func CanTransition(from, to OrderStatus) bool {
	if from.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return from.Valid()
	}
	fromIdx := from.stepIndex()
	toIdx := to.stepIndex()
	if fromIdx < 0 || toIdx < 0 {
		return false
	}
	return toIdx == fromIdx+1
}

// StatusDisplay carries the user-facing rendering metadata for a status.
type StatusDisplay struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var orderStatusDisplays = map[OrderStatus]StatusDisplay{
	StatusPending:          {Label: "Pending", Icon: "clock", Color: "yellow"},
	StatusConfirmed:        {Label: "Confirmed", Icon: "check", Color: "blue"},
	StatusPickupScheduled:  {Label: "Pickup Scheduled", Icon: "calendar", Color: "blue"},
	StatusPickedUp:         {Label: "Picked Up", Icon: "truck", Color: "indigo"},
	StatusInProcess:        {Label: "In Process", Icon: "wrench", Color: "purple"},
	StatusQualityCheck:     {Label: "Quality Check", Icon: "search", Color: "orange"},
	StatusReadyForDelivery: {Label: "Ready for Delivery", Icon: "package", Color: "green"},
	StatusOutForDelivery:   {Label: "Out for Delivery", Icon: "truck", Color: "teal"},
	StatusDelivered:        {Label: "Delivered", Icon: "check-circle", Color: "emerald"},
	StatusCancelled:        {Label: "Cancelled", Icon: "x-circle", Color: "red"},
}

// Display returns the rendering metadata for s. Unknown values fall back to
// the pending display rather than failing, so stale or hand-edited rows still
// render.
func (s OrderStatus) Display() StatusDisplay {
	if d, ok := orderStatusDisplays[s]; ok {
		return d
	}
	return orderStatusDisplays[StatusPending]
}

// ProgressIndex returns the furthest completed step reached by a tracking
// history, for progress-bar rendering. Cancelled and unknown statuses do not
// advance progress. An empty history returns -1.
func ProgressIndex(entries []TrackingEntry) int {
	furthest := -1
	for _, e := range entries {
		if idx := e.Status.stepIndex(); idx > furthest {
			furthest = idx
		}
	}
	return furthest
}

// PaymentStatus is the settlement lifecycle stage, independent of the
// operational status.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

var paymentTransitions = map[PaymentStatus]map[PaymentStatus]bool{
	PaymentPending: {PaymentPaid: true, PaymentFailed: true},
	PaymentPaid:    {PaymentRefunded: true},
}

// CanTransitionPayment reports whether a payment may move between two
// settlement statuses. Only pending->paid, pending->failed and
// paid->refunded are allowed.
func CanTransitionPayment(from, to PaymentStatus) bool {
	return paymentTransitions[from][to]
}

// PaymentMethod tags how an order is settled. It is informational, not a
// state machine.
type PaymentMethod string

const (
	MethodCashOnDelivery PaymentMethod = "cod"
	MethodBankTransfer   PaymentMethod = "bank_transfer"
	MethodCreditCard     PaymentMethod = "credit_card"
	MethodDigitalWallet  PaymentMethod = "digital_wallet"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCashOnDelivery, MethodBankTransfer, MethodCreditCard, MethodDigitalWallet:
		return true
	}
	return false
}

// UserRole is the access role attached to a profile.
type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleCustomer      UserRole = "customer"
	RoleCourier       UserRole = "courier"
	RoleWorkshopStaff UserRole = "workshop_staff"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleCustomer, RoleCourier, RoleWorkshopStaff:
		return true
	}
	return false
}
