package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/wagetrack/app/store"
)

func formRequest(form url.Values) *http.Request {
	req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestParseWorker(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    store.Worker
		wantErr *ValidationError
	}{
		{name: "all fields", form: url.Values{"name": {"Alice"}, "age": {"30"}, "contact": {"alice@x.com"}, "wage": {"20.0"}},
			want: store.Worker{Name: "Alice", Age: ptr(int64(30)), Contact: ptr("alice@x.com"), WageRate: ptr(20.0)}},
		{name: "name only", form: url.Values{"name": {"Bob"}}, want: store.Worker{Name: "Bob"}},
		{name: "text kept as entered", form: url.Values{"name": {"  Carol "}, "contact": {" c@x.com "}, "wage": {" 12.5 "}},
			want: store.Worker{Name: "  Carol ", Contact: ptr(" c@x.com "), WageRate: ptr(12.5)}},
		{name: "empty contact posted", form: url.Values{"name": {"Dan"}, "contact": {""}, "age": {""}, "wage": {""}},
			want: store.Worker{Name: "Dan", Contact: ptr("")}},
		{name: "negative values allowed", form: url.Values{"name": {"D"}, "age": {"-1"}, "wage": {"-1"}},
			want: store.Worker{Name: "D", Age: ptr(int64(-1)), WageRate: ptr(-1.0)}},
		{name: "float grammar", form: url.Values{"name": {"F"}, "age": {"+7"}, "wage": {".5"}},
			want: store.Worker{Name: "F", Age: ptr(int64(7)), WageRate: ptr(0.5)}},
		{name: "no name", form: url.Values{"wage": {"1"}}, wantErr: &ValidationError{Field: "name", Reason: "is required"}},
		{name: "blank name", form: url.Values{"name": {" \t "}}, wantErr: &ValidationError{Field: "name", Reason: "is required"}},
		{name: "age not a number", form: url.Values{"name": {"E"}, "age": {"x"}}, wantErr: &ValidationError{Field: "age", Reason: "must be a whole number"}},
		{name: "fractional age", form: url.Values{"name": {"E"}, "age": {"30.5"}}, wantErr: &ValidationError{Field: "age", Reason: "must be a whole number"}},
		{name: "age overflow", form: url.Values{"name": {"E"}, "age": {"99999999999999999999"}}, wantErr: &ValidationError{Field: "age", Reason: "must be a whole number"}},
		{name: "wage not a number", form: url.Values{"name": {"E"}, "wage": {"1,5"}}, wantErr: &ValidationError{Field: "wage", Reason: "must be a number"}},
		{name: "wage NaN", form: url.Values{"name": {"E"}, "wage": {"NaN"}}, wantErr: &ValidationError{Field: "wage", Reason: "must be a number"}},
		{name: "wage infinite", form: url.Values{"name": {"E"}, "wage": {"1e400"}}, wantErr: &ValidationError{Field: "wage", Reason: "must be a number"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, values, err := parseWorker(formRequest(tt.form))
			assert.Equal(t, tt.form.Get("name"), values["name"])
			if tt.wantErr != nil {
				require.Error(t, err)
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tt.wantErr, verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, w)
		})
	}
}

func TestParseAttendance(t *testing.T) {
	a, _, err := parseAttendance(formRequest(url.Values{"date": {"2024-01-01"}, "hours": {"8"}}), 3, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, store.Attendance{WorkerID: 3, WorkDate: "2024-01-01", HoursWorked: 8}, a)

	a, _, err = parseAttendance(formRequest(url.Values{"hours": {"7.5"}}), 3, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", a.WorkDate)

	for raw, want := range map[string]float64{"1e1": 10, "5.": 5, ".25": 0.25, " 3 ": 3} {
		a, _, err = parseAttendance(formRequest(url.Values{"hours": {raw}}), 3, "2024-05-17")
		require.NoError(t, err, raw)
		assert.InDelta(t, want, a.HoursWorked, 1e-9, raw)
	}

	// dates are free-form text
	a, _, err = parseAttendance(formRequest(url.Values{"date": {"yesterday"}, "hours": {"1"}}), 3, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, "yesterday", a.WorkDate)

	_, values, err := parseAttendance(formRequest(url.Values{"date": {"2024-01-01"}, "hours": {"lots"}}), 3, "2024-05-17")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "hours", verr.Field)
	assert.Equal(t, "lots", values["hours"])
}

func TestParsePayment(t *testing.T) {
	p, _, err := parsePayment(formRequest(url.Values{"amount": {"100"}, "mode": {"cash"}, "date": {"2024-01-03"}}), 1, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, store.Payment{WorkerID: 1, PaymentDate: "2024-01-03", AmountPaid: 100, ModeOfPayment: "cash"}, p)

	p, _, err = parsePayment(formRequest(url.Values{"amount": {"5.25"}, "mode": {"bank transfer"}}), 1, "2024-05-17")
	require.NoError(t, err)
	assert.Equal(t, "2024-05-17", p.PaymentDate)
	assert.InDelta(t, 5.25, p.AmountPaid, 1e-9)

	_, _, err = parsePayment(formRequest(url.Values{"amount": {"5"}}), 1, "2024-05-17")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, &ValidationError{Field: "mode", Reason: "is required"}, verr)
}

func TestParseForms_IgnoreQueryParams(t *testing.T) {
	req := formRequest(url.Values{"hours": {"2"}})
	req.URL.RawQuery = url.Values{"hours": {"99"}, "date": {"2020-01-01"}}.Encode()
	a, _, err := parseAttendance(req, 1, "2024-05-17")
	require.NoError(t, err)
	assert.InDelta(t, 2.0, a.HoursWorked, 1e-9)
	assert.Equal(t, "2024-05-17", a.WorkDate)

	req = formRequest(url.Values{})
	req.URL.RawQuery = url.Values{"name": {"Mallory"}}.Encode()
	_, _, err = parseWorker(req)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)
}

func TestParseFloat(t *testing.T) {
	for _, raw := range []string{"NaN", "nan", "Inf", "-Infinity", "1e400", "", "1,5", "ten"} {
		_, err := parseFloat(raw)
		assert.Error(t, err, raw)
	}
	v, err := parseFloat("-2.5e-1")
	require.NoError(t, err)
	assert.InDelta(t, -0.25, v, 1e-12)
}

func TestParseWorkerID(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{"1", 1, false},
		{"42", 42, false},
		{"-3", -3, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", http.NoBody)
			req.SetPathValue("worker_id", tt.raw)
			id, err := parseWorkerID(req)
			if tt.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, "worker_id", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "hours", Reason: "must be a number"}
	assert.EqualError(t, err, "invalid hours: must be a number")
}
