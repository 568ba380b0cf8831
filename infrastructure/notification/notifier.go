// Package notification define o colaborador de notificação dos eventos do ciclo
// S&OP. O núcleo só emite eventos; o mecanismo de entrega (log, email) é externo.
package notification

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Event identifica o tipo de evento emitido
type Event string

const (
	EventCycleOpened        Event = "cycle_opened"
	EventCycleClosed        Event = "cycle_closed"
	EventSubmissionReminder Event = "submission_reminder"
	EventForecastApproved   Event = "forecast_approved"
	EventForecastRejected   Event = "forecast_rejected"
)

type Notifier interface {
	Notify(ctx context.Context, event Event, payload map[string]any) error
}

type logNotifier struct{}

// NewLogNotifier cria um Notifier que registra os eventos como linhas de log
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (n *logNotifier) Notify(_ context.Context, event Event, payload map[string]any) error {
	logrus.WithFields(logrus.Fields{
		"event":   string(event),
		"payload": payload,
	}).Info("Evento de notificação emitido")
	return nil
}

// Dispatch emite o evento em modo fire-and-forget: falha de entrega é logada e
// nunca propagada para a operação de negócio que a originou.
func Dispatch(ctx context.Context, notifier Notifier, event Event, payload map[string]any) {
	if notifier == nil {
		return
	}

	if err := notifier.Notify(ctx, event, payload); err != nil {
		logrus.WithError(err).WithField("event", string(event)).Error("Erro ao emitir notificação")
	}
}
