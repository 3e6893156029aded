package handler

import (
	"github.com/fleetrent/fleetrent/internal/domain"
)

// ShapeKind selects which representation of an entity a response uses.
// Collection reads use the reduced list shape; single-record reads and
// mutation responses use the detail shape; image upload has its own.
type ShapeKind int

const (
	// ShapeList is the reduced field set for index views.
	ShapeList ShapeKind = iota

	// ShapeDetail extends the list shape with administrative and
	// financial fields.
	ShapeDetail

	// ShapeImage carries only the id and the image reference.
	ShapeImage
)

// merge copies extra fields into base and returns base.
func merge(base, extras map[string]any) map[string]any {
	for k, v := range extras {
		base[k] = v
	}
	return base
}

// =============================================================================
// Vehicle Shapes
// =============================================================================

func vehicleBaseFields(v *domain.Vehicle) map[string]any {
	return map[string]any{
		"id":               v.ID,
		"vehicle_name":     v.VehicleName,
		"registration_no":  v.RegistrationNo,
		"daily_min_rate":   v.DailyMinRate,
		"monthly_min_rate": v.MonthlyMinRate,
		"status":           v.Status,
	}
}

func vehicleDetailExtras(v *domain.Vehicle) map[string]any {
	return map[string]any{
		"daily_max_rate":   v.DailyMaxRate,
		"monthly_max_rate": v.MonthlyMaxRate,
	}
}

// VehicleShape renders a vehicle in the requested shape.
func VehicleShape(v *domain.Vehicle, kind ShapeKind) map[string]any {
	switch kind {
	case ShapeDetail:
		return merge(vehicleBaseFields(v), vehicleDetailExtras(v))
	case ShapeImage:
		return map[string]any{
			"id":    v.ID,
			"image": v.Image,
		}
	default:
		return vehicleBaseFields(v)
	}
}

// VehicleShapes renders a slice of vehicles.
// An empty result is a JSON array, never null.
func VehicleShapes(vehicles []*domain.Vehicle, kind ShapeKind) []map[string]any {
	out := make([]map[string]any, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, VehicleShape(v, kind))
	}
	return out
}

// =============================================================================
// Customer Shapes
// =============================================================================

func customerBaseFields(c *domain.Customer) map[string]any {
	return map[string]any{
		"id":              c.ID,
		"customer_name":   c.CustomerName,
		"customer_type":   c.CustomerType,
		"cr_id_no":        c.CRIDNo,
		"customer_email":  c.CustomerEmail,
		"customer_mobile": c.CustomerMobile,
	}
}

func customerDetailExtras(c *domain.Customer) map[string]any {
	return map[string]any{
		"customer_address": c.CustomerAddress,
		"customer_phone":   c.CustomerPhone,
		"is_blocked":       c.IsBlocked,
	}
}

// CustomerShape renders a customer in the requested shape.
func CustomerShape(c *domain.Customer, kind ShapeKind) map[string]any {
	if kind == ShapeDetail {
		return merge(customerBaseFields(c), customerDetailExtras(c))
	}
	return customerBaseFields(c)
}

// CustomerShapes renders a slice of customers.
func CustomerShapes(customers []*domain.Customer, kind ShapeKind) []map[string]any {
	out := make([]map[string]any, 0, len(customers))
	for _, c := range customers {
		out = append(out, CustomerShape(c, kind))
	}
	return out
}

// =============================================================================
// Agreement Shapes
// =============================================================================

func agreementBaseFields(a *domain.Agreement) map[string]any {
	return map[string]any{
		"id":           a.ID,
		"rent_type":    a.RentType,
		"agreement_no": a.AgreementNo,
		"deposit_type": a.DepositType,
		"checkin_date": a.CheckinDate,
		"customer":     a.CustomerID,
		"vehicle":      a.VehicleID,
	}
}

func agreementDetailExtras(a *domain.Agreement) map[string]any {
	return map[string]any{
		"external_customer_name": a.ExternalCustomerName,
		"checkout_date":          a.CheckoutDate,
	}
}

// AgreementShape renders an agreement in the requested shape.
func AgreementShape(a *domain.Agreement, kind ShapeKind) map[string]any {
	if kind == ShapeDetail {
		return merge(agreementBaseFields(a), agreementDetailExtras(a))
	}
	return agreementBaseFields(a)
}

// AgreementShapes renders a slice of agreements.
func AgreementShapes(agreements []*domain.Agreement, kind ShapeKind) []map[string]any {
	out := make([]map[string]any, 0, len(agreements))
	for _, a := range agreements {
		out = append(out, AgreementShape(a, kind))
	}
	return out
}

// =============================================================================
// User Shape
// =============================================================================

// UserShape renders a user for API responses. The password hash and the
// staff flags are never exposed.
func UserShape(u *domain.User) map[string]any {
	return map[string]any{
		"id":    u.ID,
		"email": u.Email,
		"name":  u.Name,
	}
}
