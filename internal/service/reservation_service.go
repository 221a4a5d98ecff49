package service

import (
	"context"
	"log"
	"time"

	"terra/internal/entities"
	appErrors "terra/internal/errors"
	"terra/internal/holdnote"
)

// ReservationService runs one booking attempt end to end:
// validate → price → authenticate → sweep (best-effort) → availability →
// provisional hold → payment artifact → hold annotation.
//
// Attempts are stateless; the calendar is the only shared resource. There
// is no lock between the availability read and the hold write — two racing
// attempts for the same dates rely on that gap staying short.
type ReservationService struct {
	calendars CalendarConnector
	sweeper   *SweeperService
	creator   ArtifactCreator

	rates     RateTable
	maxNights int

	calDirectID string
	calBlockID  string

	now func() time.Time
}

func NewReservationService(calendars CalendarConnector, sweeper *SweeperService, creator ArtifactCreator,
	rates RateTable, maxNights int, calDirectID, calBlockID string) *ReservationService {
	return &ReservationService{
		calendars:   calendars,
		sweeper:     sweeper,
		creator:     creator,
		rates:       rates,
		maxNights:   maxNights,
		calDirectID: calDirectID,
		calBlockID:  calBlockID,
		now:         time.Now,
	}
}

// Reserve turns a booking request into a payment artifact or a typed
// rejection. Any failure before the hold exists leaves no state behind;
// any failure after deliberately leaves the hold in place so the date
// block survives until manual completion or the next sweep.
func (s *ReservationService) Reserve(ctx context.Context, req *entities.BookingRequest) (*entities.PaymentArtifact, error) {
	if req.CheckIn.IsZero() || req.CheckOut.IsZero() || req.Guests <= 0 || req.Name == "" || req.Email == "" {
		return nil, appErrors.NewValidationError("入力内容に不備があります。")
	}

	quote, err := PriceStay(req.CheckIn, req.CheckOut, req.Guests, s.rates)
	if err != nil {
		return nil, err
	}
	if quote.Nights > s.maxNights {
		return nil, appErrors.ErrStayTooLong
	}

	session, err := s.calendars.Connect(ctx)
	if err != nil {
		return nil, appErrors.NewSystemFailure(err)
	}

	// Advisory cleanup pass. Failures are swallowed inside Sweep: the
	// availability check below re-reads busy intervals authoritatively.
	s.sweeper.Sweep(ctx, session, s.now())

	available, err := CheckAvailable(ctx, session, req.CheckIn, req.CheckOut, []string{s.calDirectID, s.calBlockID})
	if err != nil {
		return nil, appErrors.NewSystemFailure(err)
	}
	if !available {
		return nil, appErrors.ErrDateConflict
	}

	now := s.now()
	expiresAt := now.Add(s.creator.HoldTTL())
	note := holdnote.Note{
		GuestName:  req.Name,
		GuestEmail: req.Email,
		Guests:     req.Guests,
		Total:      quote.Total,
		ExpiresAt:  expiresAt,
	}
	description := note.Encode()

	created, err := session.InsertEvent(ctx, s.calDirectID, entities.CalendarEvent{
		Summary:     holdnote.Title(req.Name),
		Description: description,
		StartDate:   req.CheckIn.Format(dateLayout),
		EndDate:     req.CheckOut.Format(dateLayout),
		ColorID:     "8",
	})
	if err != nil {
		return nil, appErrors.NewSystemFailure(err)
	}

	hold := &entities.Hold{
		EventID:   created.ID,
		CheckIn:   req.CheckIn,
		CheckOut:  req.CheckOut,
		GuestName: req.Name,
		CreatedAt: now,
		ExpiresAt: expiresAt,
		Status:    s.creator.HoldStatus(),
	}

	artifact, err := s.creator.CreateArtifact(ctx, req, quote, hold)
	if err != nil {
		// Hold stays on the calendar: it either gets completed by hand or
		// reclaimed once its expiry passes.
		log.Printf("Reserve: payment step failed, hold %s left for sweep: %v", hold.EventID, err)
		return nil, appErrors.NewSystemFailure(err)
	}

	annotated := description
	switch artifact.Kind {
	case entities.ArtifactInvoice:
		annotated = holdnote.AppendInvoiceID(annotated, artifact.Reference)
	default:
		annotated = holdnote.AppendPaymentURL(annotated, artifact.Reference)
	}
	if err := session.PatchEventDescription(ctx, s.calDirectID, hold.EventID, annotated); err != nil {
		log.Printf("Reserve: failed to annotate hold %s with payment reference: %v", hold.EventID, err)
		return nil, appErrors.NewSystemFailure(err)
	}

	return artifact, nil
}
