package web

import (
	"errors"
	"net/http"

	log "github.com/go-pkgz/lgr"

	"github.com/umputun/wagetrack/app/store"
	"github.com/umputun/wagetrack/app/wage"
)

const isoDate = "2006-01-02"

// handleIndex renders the list of all workers
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	workers, err := conn.ListWorkers(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}

	data := s.newTemplateData("Workers")
	data.Workers = workers
	s.render(w, "index.html", data)
}

// handleAddWorkerForm renders the empty worker form
func (s *Server) handleAddWorkerForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, "add_worker.html", s.newTemplateData("Add worker"))
}

// handleAddWorker creates a worker and redirects to the index
func (s *Server) handleAddWorker(w http.ResponseWriter, r *http.Request) {
	worker, values, err := parseWorker(r)
	if err != nil {
		data := s.newTemplateData("Add worker")
		data.Form = values
		s.rejectForm(w, "add_worker.html", data, err)
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	id, err := conn.AddWorker(r.Context(), worker)
	if err != nil {
		s.storageError(w, err)
		return
	}
	log.Printf("[INFO] added worker %d %q", id, worker.Name)
	http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
}

// handleAttendanceForm renders the attendance form with today's date
func (s *Server) handleAttendanceForm(w http.ResponseWriter, r *http.Request) {
	s.renderRecordForm(w, r, "attendance.html", "Record attendance")
}

// handleAttendance records an attendance entry and redirects to the index
func (s *Server) handleAttendance(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseWorkerID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	att, values, err := parseAttendance(r, workerID, s.today())
	if err != nil {
		data := s.newTemplateData("Record attendance")
		data.WorkerID, data.Today, data.Form = workerID, s.today(), values
		s.rejectForm(w, "attendance.html", data, err)
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	id, err := conn.RecordAttendance(r.Context(), att)
	if err != nil {
		s.storageError(w, err)
		return
	}
	log.Printf("[INFO] recorded attendance %d for worker %d, %s %vh", id, workerID, att.WorkDate, att.HoursWorked)
	http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
}

// handlePaymentForm renders the payment form with today's date
func (s *Server) handlePaymentForm(w http.ResponseWriter, r *http.Request) {
	s.renderRecordForm(w, r, "payment.html", "Record payment")
}

// handlePayment records a payment and redirects to the index
func (s *Server) handlePayment(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseWorkerID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	pay, values, err := parsePayment(r, workerID, s.today())
	if err != nil {
		data := s.newTemplateData("Record payment")
		data.WorkerID, data.Today, data.Form = workerID, s.today(), values
		s.rejectForm(w, "payment.html", data, err)
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	id, err := conn.RecordPayment(r.Context(), pay)
	if err != nil {
		s.storageError(w, err)
		return
	}
	log.Printf("[INFO] recorded payment %d for worker %d, %s %v (%s)", id, workerID, pay.PaymentDate, pay.AmountPaid, pay.ModeOfPayment)
	http.Redirect(w, r, s.url("/"), http.StatusSeeOther)
}

// handleReport renders the wage report of a worker
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	workerID, err := parseWorkerID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	report, err := wage.BuildReport(r.Context(), conn, workerID)
	if errors.Is(err, store.ErrNotFound) {
		s.renderError(w, http.StatusNotFound, "worker not found")
		return
	}
	if err != nil {
		s.storageError(w, err)
		return
	}

	data := s.newTemplateData("Wage report")
	data.Report = report
	s.render(w, "report.html", data)
}

// renderRecordForm renders attendance or payment form for the worker in the path.
// the worker isn't required to exist, its name is shown when known.
func (s *Server) renderRecordForm(w http.ResponseWriter, r *http.Request, page, title string) {
	workerID, err := parseWorkerID(r)
	if err != nil {
		s.renderError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.store.Acquire(r.Context())
	if err != nil {
		s.storageError(w, err)
		return
	}
	defer conn.Close()

	data := s.newTemplateData(title)
	data.WorkerID = workerID
	data.Today = s.today()

	worker, err := conn.GetWorker(r.Context(), workerID)
	switch {
	case err == nil:
		data.Worker = &worker
	case !errors.Is(err, store.ErrNotFound):
		s.storageError(w, err)
		return
	}
	s.render(w, page, data)
}

// rejectForm re-renders a form with the validation error and 400 status
func (s *Server) rejectForm(w http.ResponseWriter, page string, data TemplateData, err error) {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		s.storageError(w, err)
		return
	}
	log.Printf("[DEBUG] rejected %s, %v", page, verr)
	data.Error = verr.Error()
	s.renderStatus(w, http.StatusBadRequest, page, data)
}

// storageError logs the failure and renders a generic 500 page
func (s *Server) storageError(w http.ResponseWriter, err error) {
	log.Printf("[ERROR] %v", err)
	s.renderError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) today() string {
	return s.now().Format(isoDate)
}
