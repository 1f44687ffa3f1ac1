package wizard

import (
	"errors"
	"fmt"
)

// State is the wizard's current screen
type State int

const (
	StateLanding State = iota
	StateQuestions
	StateProcessing
	StateResults
)

func (s State) String() string {
	switch s {
	case StateLanding:
		return "landing"
	case StateQuestions:
		return "questions"
	case StateProcessing:
		return "processing"
	case StateResults:
		return "results"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Event drives a wizard transition
type Event int

const (
	EventSubmit Event = iota
	EventQuestionsReady
	EventAnswersComplete
	EventAnalysisReady
	EventBack
	EventRegenerate
	EventReset
	EventFail
)

func (e Event) String() string {
	switch e {
	case EventSubmit:
		return "submit"
	case EventQuestionsReady:
		return "questionsReady"
	case EventAnswersComplete:
		return "answersComplete"
	case EventAnalysisReady:
		return "analysisReady"
	case EventBack:
		return "back"
	case EventRegenerate:
		return "regenerate"
	case EventReset:
		return "reset"
	case EventFail:
		return "fail"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

// ErrInvalidTransition is returned for an event the current state does
// not accept.
var ErrInvalidTransition = errors.New("invalid wizard transition")

// Transition is the pure state-transition function. Reset is accepted
// from every state; Fail returns to the landing screen. Back from
// Processing only changes the displayed state; it does not abort an
// in-flight request.
func Transition(state State, event Event) (State, error) {
	switch event {
	case EventReset:
		return StateLanding, nil
	case EventFail:
		return StateLanding, nil
	}

	switch state {
	case StateLanding:
		if event == EventSubmit {
			return StateProcessing, nil
		}
	case StateQuestions:
		switch event {
		case EventAnswersComplete:
			return StateProcessing, nil
		case EventBack:
			return StateLanding, nil
		}
	case StateProcessing:
		switch event {
		case EventQuestionsReady:
			return StateQuestions, nil
		case EventAnalysisReady:
			return StateResults, nil
		case EventBack:
			return StateQuestions, nil
		}
	case StateResults:
		switch event {
		case EventBack:
			return StateProcessing, nil
		case EventRegenerate:
			return StateProcessing, nil
		}
	}

	return state, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, event, state)
}
