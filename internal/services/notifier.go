package services

import (
	"context"
	"log"

	"github.com/driveshare/driveshare-backend/internal/models"
	"github.com/driveshare/driveshare-backend/pkg/utils"
)

// HubNotifier delivers lifecycle events over the WebSocket hub and echoes
// booking state changes onto Redis pub/sub. Everything here is
// fire-and-forget: delivery failures never roll back a transition.
type HubNotifier struct {
	Hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{Hub: hub}
}

func bidEvent(bid *models.Bid) BidEvent {
	return BidEvent{
		BidID:     bid.ID,
		VehicleID: bid.VehicleID,
		Amount:    bid.Amount,
		StartDate: bid.StartDate.Format(utils.DateLayout),
		EndDate:   bid.EndDate.Format(utils.DateLayout),
		Status:    string(bid.Status),
	}
}

// BidPlaced tells the owner a new bid arrived
func (n *HubNotifier) BidPlaced(bid *models.Bid) {
	n.Hub.SendToUser(bid.OwnerID, "bid_placed", bidEvent(bid))
}

// BidApproved tells the bidder their bid won
func (n *HubNotifier) BidApproved(bid *models.Bid) {
	n.Hub.SendToUser(bid.BidderID, "bid_approved", bidEvent(bid))
	n.publish(bid)
}

// BidRejected tells the bidder their bid lost, whether rejected directly
// or through an approval cascade
func (n *HubNotifier) BidRejected(bid *models.Bid) {
	n.Hub.SendToUser(bid.BidderID, "bid_rejected", bidEvent(bid))
	n.publish(bid)
}

// TripStarted tells both parties the trip began
func (n *HubNotifier) TripStarted(bid *models.Bid) {
	event := TripEvent{
		BookingID:  bid.ID,
		VehicleID:  bid.VehicleID,
		TripStatus: string(bid.TripStatus),
		Odometer:   bid.StartOdometer,
	}
	n.Hub.SendToUser(bid.BidderID, "trip_started", event)
	n.Hub.SendToUser(bid.OwnerID, "trip_started", event)
}

// TripEnded tells both parties the trip finished and what it settled for
func (n *HubNotifier) TripEnded(bid *models.Bid) {
	event := TripEvent{
		BookingID:   bid.ID,
		VehicleID:   bid.VehicleID,
		TripStatus:  string(bid.TripStatus),
		Odometer:    bid.EndOdometer,
		FinalAmount: bid.FinalAmount,
	}
	n.Hub.SendToUser(bid.BidderID, "trip_ended", event)
	n.Hub.SendToUser(bid.OwnerID, "trip_ended", event)
}

func (n *HubNotifier) publish(bid *models.Bid) {
	err := PublishBookingUpdate(context.Background(), bid.ID, string(bid.Status), map[string]interface{}{
		"vehicleId": bid.VehicleID,
		"bidderId":  bid.BidderID,
	})
	if err != nil {
		log.Printf("Failed to publish booking update for bid %d: %v", bid.ID, err)
	}
}
