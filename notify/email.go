// Package notify emails vehicle owners and renters about rental activity
// through SendGrid.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/serendibgo/rental-api/config"
	"github.com/serendibgo/rental-api/databases"
	"github.com/serendibgo/rental-api/models"
	templates "github.com/serendibgo/rental-api/templates/html"
)

const (
	senderName = "SerendibGo"
	dateLayout = "Mon, 02 Jan 2006 15:04"
)

// Sender delivers a prepared message. *sendgrid.Client satisfies it.
type Sender interface {
	Send(email *mail.SGMailV3) (*rest.Response, error)
}

// EmailNotifier sends rental emails. A disabled notifier only logs what it
// would have sent.
type EmailNotifier struct {
	Users    databases.UserDatabase
	Vehicles databases.VehicleDatabase
	Sender   Sender
	From     string
	BaseURL  string
	Enabled  bool
}

// NewEmailNotifier builds a notifier from the service configuration
func NewEmailNotifier(conf *config.Config, users databases.UserDatabase, vehicles databases.VehicleDatabase) *EmailNotifier {
	enabled := conf.EmailNotificationsEnabled
	if enabled && conf.SendGridAPIKey == "" {
		zap.S().Warnw("SENDGRID_API_KEY not set, rental emails are disabled")
		enabled = false
	}
	return &EmailNotifier{
		Users:    users,
		Vehicles: vehicles,
		Sender:   sendgrid.NewSendClient(conf.SendGridAPIKey),
		From:     conf.EmailFrom,
		BaseURL:  conf.BaseURL,
		Enabled:  enabled,
	}
}

// RentalRequested tells the vehicle owner about a new pending rental
func (n *EmailNotifier) RentalRequested(ctx context.Context, rental models.VehicleRental, vehicle models.Vehicle, renter models.User) {
	if !n.Enabled {
		zap.S().Debugw("rental request email skipped, notifications disabled", "rentalId", rental.ID.Hex())
		return
	}
	owner, err := n.Users.FindOne(ctx, bson.M{"_id": vehicle.Owner})
	if err != nil {
		zap.S().Errorw("failed to load vehicle owner for rental email", "ownerId", vehicle.Owner.Hex(), "error", err)
		return
	}

	data := emailData(rental, vehicle)
	data.RecipientName = owner.Name
	data.CounterpartName = renter.Name
	data.ManageURL = n.rentalURL(rental)

	subject := fmt.Sprintf("New rental request for your %s", data.VehicleName)
	plain := fmt.Sprintf("%s has requested to rent your %s from %s to %s.", renter.Name, data.VehicleName, data.StartDate, data.EndDate)
	n.send(owner, subject, plain, templates.RenderRentalRequestedEmail(data))
}

// RentalStatusChanged tells the renter their rental moved to a new status
func (n *EmailNotifier) RentalStatusChanged(ctx context.Context, rental models.VehicleRental) {
	if !n.Enabled {
		zap.S().Debugw("rental status email skipped, notifications disabled", "rentalId", rental.ID.Hex(), "status", rental.Status)
		return
	}
	renter, err := n.Users.FindOne(ctx, bson.M{"_id": rental.Renter})
	if err != nil {
		zap.S().Errorw("failed to load renter for rental email", "renterId", rental.Renter.Hex(), "error", err)
		return
	}
	vehicle, err := n.Vehicles.FindOne(ctx, bson.M{"_id": rental.Vehicle})
	if err != nil {
		zap.S().Errorw("failed to load vehicle for rental email", "vehicleId", rental.Vehicle.Hex(), "error", err)
		return
	}

	data := emailData(rental, *vehicle)
	data.RecipientName = renter.Name
	data.Status = rental.Status.String()
	data.ManageURL = n.rentalURL(rental)
	if rental.Cancellation != nil {
		data.Reason = rental.Cancellation.Reason
	}

	subject := fmt.Sprintf("Your %s rental is %s", data.VehicleName, data.Status)
	plain := fmt.Sprintf("Your rental of the %s is now %s.", data.VehicleName, data.Status)
	n.send(renter, subject, plain, templates.RenderRentalStatusEmail(data))
}

func (n *EmailNotifier) send(to *models.User, subject, plainText, htmlContent string) {
	if to.Email == "" {
		zap.S().Warnw("rental email skipped, recipient has no email", "userId", to.ID.Hex())
		return
	}
	message := mail.NewSingleEmail(
		mail.NewEmail(senderName, n.From),
		subject,
		mail.NewEmail(to.Name, to.Email),
		plainText,
		htmlContent,
	)
	response, err := n.Sender.Send(message)
	if err != nil {
		zap.S().Errorw("failed to send email", "error", err, "to", to.Email)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body, "to", to.Email)
		return
	}
	zap.S().Infow("email sent successfully", "to", to.Email, "subject", subject)
}

func (n *EmailNotifier) rentalURL(rental models.VehicleRental) string {
	if n.BaseURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/rentals/%s", n.BaseURL, rental.ID.Hex())
}

func emailData(rental models.VehicleRental, vehicle models.Vehicle) templates.RentalEmailData {
	return templates.RentalEmailData{
		VehicleName:    fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model),
		RentalType:     rental.RentalType.String(),
		StartDate:      rental.StartDate.In(colombo).Format(dateLayout),
		EndDate:        rental.EndDate.In(colombo).Format(dateLayout),
		PickupLocation: rental.PickupLocation,
		TotalAmount:    fmt.Sprintf("%s %.2f", rental.Pricing.Currency, rental.Pricing.TotalAmount),
		Status:         rental.Status.String(),
	}
}

// rental times are shown in Sri Lanka time regardless of the server zone
var colombo = time.FixedZone("Asia/Colombo", 5*3600+30*60)
