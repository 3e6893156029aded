package handler

import (
	"encoding/json"
	"io"

	"github.com/shopspring/decimal"

	"github.com/fleetrent/fleetrent/internal/domain"
)

// Payload types use pointer fields so a full update can distinguish
// "absent" from "zero value". Caller-supplied "id" and "user" keys are
// not mapped and therefore silently ignored.

// decodePayload decodes a JSON request body into dst.
func decodePayload(body io.Reader, dst any) error {
	return json.NewDecoder(body).Decode(dst)
}

// =============================================================================
// Vehicle Payload
// =============================================================================

type vehiclePayload struct {
	VehicleType    *string          `json:"vehicle_type"`
	VehicleName    *string          `json:"vehicle_name"`
	RegistrationNo *string          `json:"registration_no"`
	DailyMinRate   *decimal.Decimal `json:"daily_min_rate"`
	DailyMaxRate   *decimal.Decimal `json:"daily_max_rate"`
	MonthlyMinRate *decimal.Decimal `json:"monthly_min_rate"`
	MonthlyMaxRate *decimal.Decimal `json:"monthly_max_rate"`
	Status         *string          `json:"status"`
}

// requireAll reports every mutable field missing from the payload.
// Used on create and full update.
func (p *vehiclePayload) requireAll() fieldErrors {
	fe := fieldErrors{}
	if p.VehicleType == nil {
		fe.add("vehicle_type", requiredMsg)
	}
	if p.VehicleName == nil {
		fe.add("vehicle_name", requiredMsg)
	}
	if p.RegistrationNo == nil {
		fe.add("registration_no", requiredMsg)
	}
	if p.DailyMinRate == nil {
		fe.add("daily_min_rate", requiredMsg)
	}
	if p.DailyMaxRate == nil {
		fe.add("daily_max_rate", requiredMsg)
	}
	if p.MonthlyMinRate == nil {
		fe.add("monthly_min_rate", requiredMsg)
	}
	if p.MonthlyMaxRate == nil {
		fe.add("monthly_max_rate", requiredMsg)
	}
	if p.Status == nil {
		fe.add("status", requiredMsg)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// apply copies the supplied fields onto the vehicle.
func (p *vehiclePayload) apply(v *domain.Vehicle) {
	if p.VehicleType != nil {
		v.VehicleType = *p.VehicleType
	}
	if p.VehicleName != nil {
		v.VehicleName = *p.VehicleName
	}
	if p.RegistrationNo != nil {
		v.RegistrationNo = *p.RegistrationNo
	}
	if p.DailyMinRate != nil {
		v.DailyMinRate = *p.DailyMinRate
	}
	if p.DailyMaxRate != nil {
		v.DailyMaxRate = *p.DailyMaxRate
	}
	if p.MonthlyMinRate != nil {
		v.MonthlyMinRate = *p.MonthlyMinRate
	}
	if p.MonthlyMaxRate != nil {
		v.MonthlyMaxRate = *p.MonthlyMaxRate
	}
	if p.Status != nil {
		v.Status = *p.Status
	}
}

// =============================================================================
// Customer Payload
// =============================================================================

type customerPayload struct {
	CustomerType    *string `json:"customer_type"`
	CustomerName    *string `json:"customer_name"`
	CRIDNo          *string `json:"cr_id_no"`
	CustomerEmail   *string `json:"customer_email"`
	CustomerMobile  *string `json:"customer_mobile"`
	CustomerPhone   *string `json:"customer_phone"`
	CustomerAddress *string `json:"customer_address"`
	IsBlocked       *bool   `json:"is_blocked"`
}

// requireAll reports missing required fields. Phone, address and the
// blocked flag are optional.
func (p *customerPayload) requireAll() fieldErrors {
	fe := fieldErrors{}
	if p.CustomerType == nil {
		fe.add("customer_type", requiredMsg)
	}
	if p.CustomerName == nil {
		fe.add("customer_name", requiredMsg)
	}
	if p.CRIDNo == nil {
		fe.add("cr_id_no", requiredMsg)
	}
	if p.CustomerEmail == nil {
		fe.add("customer_email", requiredMsg)
	}
	if p.CustomerMobile == nil {
		fe.add("customer_mobile", requiredMsg)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// apply copies the supplied fields onto the customer.
func (p *customerPayload) apply(c *domain.Customer) {
	if p.CustomerType != nil {
		c.CustomerType = *p.CustomerType
	}
	if p.CustomerName != nil {
		c.CustomerName = *p.CustomerName
	}
	if p.CRIDNo != nil {
		c.CRIDNo = *p.CRIDNo
	}
	if p.CustomerEmail != nil {
		c.CustomerEmail = *p.CustomerEmail
	}
	if p.CustomerMobile != nil {
		c.CustomerMobile = *p.CustomerMobile
	}
	if p.CustomerPhone != nil {
		c.CustomerPhone = p.CustomerPhone
	}
	if p.CustomerAddress != nil {
		c.CustomerAddress = p.CustomerAddress
	}
	if p.IsBlocked != nil {
		c.IsBlocked = *p.IsBlocked
	}
}

// =============================================================================
// Agreement Payload
// =============================================================================

type agreementPayload struct {
	RentType             *string      `json:"rent_type"`
	AgreementNo          *string      `json:"agreement_no"`
	DepositType          *string      `json:"deposit_type"`
	ExternalCustomerName *string      `json:"external_customer_name"`
	CheckinDate          *domain.Date `json:"checkin_date"`
	CheckoutDate         *domain.Date `json:"checkout_date"`
	CustomerID           *int64       `json:"customer"`
	VehicleID            *int64       `json:"vehicle"`
}

// requireAll reports missing required fields. The external customer
// name and checkout date are optional.
func (p *agreementPayload) requireAll() fieldErrors {
	fe := fieldErrors{}
	if p.RentType == nil {
		fe.add("rent_type", requiredMsg)
	}
	if p.AgreementNo == nil {
		fe.add("agreement_no", requiredMsg)
	}
	if p.DepositType == nil {
		fe.add("deposit_type", requiredMsg)
	}
	if p.CheckinDate == nil {
		fe.add("checkin_date", requiredMsg)
	}
	if p.CustomerID == nil {
		fe.add("customer", requiredMsg)
	}
	if p.VehicleID == nil {
		fe.add("vehicle", requiredMsg)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// apply copies the supplied fields onto the agreement.
func (p *agreementPayload) apply(a *domain.Agreement) {
	if p.RentType != nil {
		a.RentType = *p.RentType
	}
	if p.AgreementNo != nil {
		a.AgreementNo = *p.AgreementNo
	}
	if p.DepositType != nil {
		a.DepositType = *p.DepositType
	}
	if p.ExternalCustomerName != nil {
		a.ExternalCustomerName = p.ExternalCustomerName
	}
	if p.CheckinDate != nil {
		a.CheckinDate = *p.CheckinDate
	}
	if p.CheckoutDate != nil {
		a.CheckoutDate = p.CheckoutDate
	}
	if p.CustomerID != nil {
		a.CustomerID = *p.CustomerID
	}
	if p.VehicleID != nil {
		a.VehicleID = *p.VehicleID
	}
}

// =============================================================================
// User Payloads
// =============================================================================

type createUserPayload struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type updateUserPayload struct {
	Name     *string `json:"name"`
	Password *string `json:"password"`
}

// requireAll reports missing fields on a full profile update.
func (p *updateUserPayload) requireAll() fieldErrors {
	fe := fieldErrors{}
	if p.Name == nil {
		fe.add("name", requiredMsg)
	}
	if p.Password == nil {
		fe.add("password", requiredMsg)
	}
	if len(fe) == 0 {
		return nil
	}
	return fe
}

type issueTokenPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
