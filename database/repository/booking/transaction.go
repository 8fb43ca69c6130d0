package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slotify/models"
)

// CreateIfFree inserts the booking inside a multi-document transaction after
// a fresh overlap count against live rows. Two racing submissions for the
// same interval serialize on the transaction; the loser observes the winner's
// row and gets ErrSlotTaken.
func (r *MongoBookingRepo) CreateIfFree(ctx context.Context, b *models.Booking, bufferMin int) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		// Overlap test on the buffered window: existing.start < end+buffer
		// AND existing.end > start-buffer.
		filter := bson.M{
			"agent_id": b.AgentID,
			"date":     b.Date,
			"status":   bson.M{"$ne": models.BookingCancelled},
			"start":    bson.M{"$lt": b.End + bufferMin},
			"end":      bson.M{"$gt": b.Start - bufferMin},
		}
		count, err := r.coll.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("conflict check failed: %w", err)
		}
		if count > 0 {
			return ErrSlotTaken
		}

		now := time.Now()
		b.CreatedAt = now
		b.UpdatedAt = now
		if _, err := r.coll.InsertOne(sc, b); err != nil {
			return fmt.Errorf("insert booking failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrSlotTaken) {
			return ErrSlotTaken
		}
		return fmt.Errorf("booking transaction failed: %w", err)
	}

	return nil
}
