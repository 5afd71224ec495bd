package sms

import (
	"fmt"
	"time"

	"github.com/cskr/pubsub"
)

const (
	DELIVERIES = "deliveries"

	//DefaultThrottle is the pause between consecutive send attempts
	DefaultThrottle = 600 * time.Millisecond
)

//Recipient is one validated, normalized phone number target
type Recipient struct {
	Phone string
	Name  string
}

//SendFunc performs one send attempt against the gateway
type SendFunc func(recipient Recipient) (RawResponse, error)

//Delivery pairs a recipient with the resolved outcome of its attempt
type Delivery struct {
	Recipient Recipient
	Outcome   Outcome
}

//DeliveryReport holds deliveries in send order plus aggregate counts.
//Transport errors count as failures, so SuccessCount+FailureCount==Total
type DeliveryReport struct {
	Deliveries   []Delivery
	SuccessCount int
	FailureCount int
	Total        int
}

type Runner interface {
	//Run sends to each recipient in list order and returns the report.
	//A failed attempt never stops the batch
	Run(recipients []Recipient, send SendFunc) DeliveryReport
	//Subscribe returns a channel of Delivery values published as attempts resolve
	Subscribe() chan interface{}
	Close()
}

type runner struct {
	resolver Resolver
	throttle time.Duration
	ps       *pubsub.PubSub
	sleep    func(time.Duration)
}

func NewRunner(resolver Resolver, throttle time.Duration) Runner {
	if throttle <= 0 {
		throttle = DefaultThrottle
	}
	return &runner{
		resolver: resolver,
		throttle: throttle,
		ps:       pubsub.New(100),
		sleep:    time.Sleep,
	}
}

func (r *runner) Subscribe() chan interface{} {
	return r.ps.Sub(DELIVERIES)
}

func (r *runner) Close() {
	r.ps.Shutdown()
}

func (r *runner) Run(recipients []Recipient, send SendFunc) DeliveryReport {
	report := DeliveryReport{Total: len(recipients)}

	for i, recipient := range recipients {
		outcome := r.attempt(recipient, send)

		delivery := Delivery{Recipient: recipient, Outcome: outcome}
		report.Deliveries = append(report.Deliveries, delivery)
		if outcome.Succeeded() {
			report.SuccessCount++
		}

		r.ps.TryPub(delivery, DELIVERIES)

		//pace attempts, the gateway rate limits are unknown
		if i < len(recipients)-1 {
			r.sleep(r.throttle)
		}
	}

	report.FailureCount = report.Total - report.SuccessCount

	return report
}

//attempt shields the batch from a failing or panicking send
func (r *runner) attempt(recipient Recipient, send SendFunc) (outcome Outcome) {
	defer func() {
		if rec := recover(); rec != nil {
			outcome = Outcome{Status: StatusTransportError, Detail: fmt.Sprintf("send panic: %v", rec)}
		}
	}()

	raw, err := send(recipient)
	if err != nil {
		return Outcome{Status: StatusTransportError, Detail: err.Error()}
	}

	return r.resolver.Resolve(raw)
}
