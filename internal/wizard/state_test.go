package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		event   Event
		want    State
		invalid bool
	}{
		{name: "landing submit", state: StateLanding, event: EventSubmit, want: StateProcessing},
		{name: "processing questions ready", state: StateProcessing, event: EventQuestionsReady, want: StateQuestions},
		{name: "questions complete", state: StateQuestions, event: EventAnswersComplete, want: StateProcessing},
		{name: "processing analysis ready", state: StateProcessing, event: EventAnalysisReady, want: StateResults},
		{name: "questions back", state: StateQuestions, event: EventBack, want: StateLanding},
		{name: "processing back", state: StateProcessing, event: EventBack, want: StateQuestions},
		{name: "results back", state: StateResults, event: EventBack, want: StateProcessing},
		{name: "results regenerate", state: StateResults, event: EventRegenerate, want: StateProcessing},

		{name: "reset from landing", state: StateLanding, event: EventReset, want: StateLanding},
		{name: "reset from questions", state: StateQuestions, event: EventReset, want: StateLanding},
		{name: "reset from processing", state: StateProcessing, event: EventReset, want: StateLanding},
		{name: "reset from results", state: StateResults, event: EventReset, want: StateLanding},

		{name: "fail from processing", state: StateProcessing, event: EventFail, want: StateLanding},

		{name: "landing back invalid", state: StateLanding, event: EventBack, invalid: true},
		{name: "landing regenerate invalid", state: StateLanding, event: EventRegenerate, invalid: true},
		{name: "questions submit invalid", state: StateQuestions, event: EventSubmit, invalid: true},
		{name: "processing submit invalid", state: StateProcessing, event: EventSubmit, invalid: true},
		{name: "results submit invalid", state: StateResults, event: EventSubmit, invalid: true},
		{name: "results answers invalid", state: StateResults, event: EventAnswersComplete, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := Transition(tt.state, tt.event)
			if tt.invalid {
				require.ErrorIs(t, err, ErrInvalidTransition)
				assert.Equal(t, tt.state, next, "state must not change on an invalid event")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
		})
	}
}
