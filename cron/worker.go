package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"slotify/config"
	bookingRepo "slotify/database/repository/booking"
	"slotify/models"
)

const (
	// TypeBookingReminder fires ahead of a confirmed appointment.
	TypeBookingReminder = "booking:reminder"
	// TypeStaleBookingSweep cancels pending_payment bookings whose payment
	// never arrived, releasing their time.
	TypeStaleBookingSweep = "booking:sweep"
)

// ReminderPayload is the reminder task body.
type ReminderPayload struct {
	BookingID     string `json:"bookingId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Date          string `json:"date"`
	Start         int    `json:"start"`
}

// AsynqReminderScheduler enqueues reminder tasks to fire ahead of the
// appointment.
type AsynqReminderScheduler struct {
	Client   *asynq.Client
	Lead     time.Duration
	Location *time.Location
}

// NewAsynqReminderScheduler builds a scheduler from the configured Redis
// queue.
func NewAsynqReminderScheduler() *AsynqReminderScheduler {
	client := asynq.NewClient(redisQueueOpts())
	loc := config.TimeLocation()
	return &AsynqReminderScheduler{
		Client:   client,
		Lead:     time.Duration(config.AppConfig.ReminderLeadHours) * time.Hour,
		Location: loc,
	}
}

// ScheduleReminder enqueues a reminder Lead before the appointment start; a
// booking confirmed inside the lead window gets its reminder immediately.
func (s *AsynqReminderScheduler) ScheduleReminder(ctx context.Context, b *models.Booking) error {
	payload, err := json.Marshal(ReminderPayload{
		BookingID:     b.ID,
		CustomerName:  b.Customer.Name,
		CustomerEmail: b.Customer.Email,
		Date:          b.Date,
		Start:         b.Start,
	})
	if err != nil {
		return err
	}

	day, err := time.ParseInLocation("2006-01-02", b.Date, s.Location)
	if err != nil {
		return err
	}
	fireAt := day.Add(time.Duration(b.Start)*time.Minute - s.Lead)
	task := asynq.NewTask(TypeBookingReminder, payload)
	if fireAt.Before(time.Now()) {
		_, err = s.Client.EnqueueContext(ctx, task)
		return err
	}
	_, err = s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt))
	return err
}

// InitBookingWorker runs the async worker and the periodic sweep in the
// background.
func InitBookingWorker(bookings bookingRepo.BookingRepository) {
	srv := asynq.NewServer(
		redisQueueOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeBookingReminder, handleReminderTask())
	mux.HandleFunc(TypeStaleBookingSweep, handleStaleSweep(bookings))

	go func() {
		log.Println("[BookingWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[BookingWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[BookingWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	go runSweepScheduler()
	go monitorRedisConnection()
}

// runSweepScheduler enqueues the stale-booking sweep on a fixed cadence.
func runSweepScheduler() {
	scheduler := asynq.NewScheduler(redisQueueOpts(), nil)
	if _, err := scheduler.Register("@every 10m", asynq.NewTask(TypeStaleBookingSweep, nil)); err != nil {
		log.Printf("[BookingWorker] failed to register sweep: %v", err)
		return
	}
	if err := scheduler.Run(); err != nil {
		log.Printf("[BookingWorker] sweep scheduler stopped: %v", err)
	}
}

func handleReminderTask() asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// Mail/SMS delivery lives outside this service; the reminder is
		// logged for the notification collaborator to pick up.
		log.Printf("[ReminderHandler] reminder due: booking %s for %s <%s> on %s at %s",
			p.BookingID, p.CustomerName, p.CustomerEmail, p.Date, models.Clock(p.Start))
		return nil
	}
}

func handleStaleSweep(bookings bookingRepo.BookingRepository) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		ttl := time.Duration(config.AppConfig.PendingPaymentTTL) * time.Minute
		cutoff := time.Now().Add(-ttl)

		stale, err := bookings.StalePendingPayment(ctx, cutoff)
		if err != nil {
			log.Printf("[SweepHandler] failed to list stale bookings: %v", err)
			return err
		}

		for _, b := range stale {
			if err := bookings.UpdateStatus(ctx, b.ID, models.BookingCancelled, b.PaymentStatus); err != nil {
				log.Printf("[SweepHandler] failed to cancel stale booking %s: %v", b.ID, err)
				continue
			}
			log.Printf("[SweepHandler] cancelled stale pending_payment booking %s (created %s)", b.ID, b.CreatedAt.Format(time.RFC3339))
		}
		return nil
	}
}

func redisQueueOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[BookingWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
