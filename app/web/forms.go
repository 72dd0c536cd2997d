package web

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/umputun/wagetrack/app/store"
)

// ValidationError is returned for malformed request input
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// validate is shared, validator caches struct metadata and is safe for concurrent use
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report form field names instead of struct field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return fld.Tag.Get("form")
	})
	must(v.RegisterValidation("notblank", validators.NotBlank))
	must(v.RegisterValidation("integer", func(fl validator.FieldLevel) bool {
		_, err := strconv.ParseInt(fl.Field().String(), 10, 64)
		return err == nil
	}))
	must(v.RegisterValidation("float", func(fl validator.FieldLevel) bool {
		_, err := parseFloat(fl.Field().String())
		return err == nil
	}))
	return v
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// text fields are kept as entered, numeric fields are trimmed before parsing
type workerForm struct {
	Name    string `form:"name" validate:"required,notblank"`
	Age     string `form:"age" validate:"omitempty,integer"`
	Contact string `form:"contact"`
	Wage    string `form:"wage" validate:"omitempty,float"`
}

type attendanceForm struct {
	Date  string `form:"date"`
	Hours string `form:"hours" validate:"required,float"`
}

type paymentForm struct {
	Amount string `form:"amount" validate:"required,float"`
	Mode   string `form:"mode" validate:"required,notblank"`
	Date   string `form:"date"`
}

// parseWorker converts the add-worker form into a store.Worker.
// Empty age and wage become nil, contact is nil only when the field is not posted.
func parseWorker(r *http.Request) (store.Worker, map[string]string, error) {
	contact, hasContact := postValue(r, "contact")
	f := workerForm{
		Name:    r.PostFormValue("name"),
		Age:     numericValue(r, "age"),
		Contact: contact,
		Wage:    numericValue(r, "wage"),
	}
	values := map[string]string{"name": f.Name, "age": f.Age, "contact": f.Contact, "wage": f.Wage}
	if err := validateForm(f); err != nil {
		return store.Worker{}, values, err
	}

	w := store.Worker{Name: f.Name}
	if f.Age != "" {
		age, err := strconv.ParseInt(f.Age, 10, 64)
		if err != nil {
			return store.Worker{}, values, &ValidationError{Field: "age", Reason: "must be a whole number"}
		}
		w.Age = &age
	}
	if hasContact {
		w.Contact = &f.Contact
	}
	if f.Wage != "" {
		rate, err := parseFloat(f.Wage)
		if err != nil {
			return store.Worker{}, values, &ValidationError{Field: "wage", Reason: "must be a number"}
		}
		w.WageRate = &rate
	}
	return w, values, nil
}

// parseAttendance converts the attendance form, empty date defaults to today
func parseAttendance(r *http.Request, workerID int64, today string) (store.Attendance, map[string]string, error) {
	f := attendanceForm{Date: r.PostFormValue("date"), Hours: numericValue(r, "hours")}
	values := map[string]string{"date": f.Date, "hours": f.Hours}
	if err := validateForm(f); err != nil {
		return store.Attendance{}, values, err
	}

	hours, err := parseFloat(f.Hours)
	if err != nil {
		return store.Attendance{}, values, &ValidationError{Field: "hours", Reason: "must be a number"}
	}
	if f.Date == "" {
		f.Date = today
	}
	return store.Attendance{WorkerID: workerID, WorkDate: f.Date, HoursWorked: hours}, values, nil
}

// parsePayment converts the payment form, empty date defaults to today
func parsePayment(r *http.Request, workerID int64, today string) (store.Payment, map[string]string, error) {
	f := paymentForm{Amount: numericValue(r, "amount"), Mode: r.PostFormValue("mode"), Date: r.PostFormValue("date")}
	values := map[string]string{"amount": f.Amount, "mode": f.Mode, "date": f.Date}
	if err := validateForm(f); err != nil {
		return store.Payment{}, values, err
	}

	amount, err := parseFloat(f.Amount)
	if err != nil {
		return store.Payment{}, values, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if f.Date == "" {
		f.Date = today
	}
	return store.Payment{WorkerID: workerID, PaymentDate: f.Date, AmountPaid: amount, ModeOfPayment: f.Mode}, values, nil
}

// parseWorkerID extracts the worker_id path value
func parseWorkerID(r *http.Request) (int64, error) {
	raw := r.PathValue("worker_id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "worker_id", Reason: fmt.Sprintf("%q is not an integer", raw)}
	}
	return id, nil
}

// validateForm runs struct validation and converts the first failure to ValidationError
func validateForm(f any) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("failed to validate form: %w", err)
	}
	fe := verrs[0]
	reason := "is invalid"
	switch fe.Tag() {
	case "required", "notblank":
		reason = "is required"
	case "integer":
		reason = "must be a whole number"
	case "float":
		reason = "must be a number"
	}
	return &ValidationError{Field: fe.Field(), Reason: reason}
}

// parseFloat accepts anything strconv.ParseFloat does except NaN and infinities
func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

// postValue returns a field of the request body and whether it was posted at all
func postValue(r *http.Request, key string) (string, bool) {
	v := r.PostFormValue(key)
	_, ok := r.PostForm[key]
	return v, ok
}

func numericValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
