package game

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
)

// HumanAgent asks a person, through the Prompter, whether to hit or stand
type HumanAgent struct {
	prompter Prompter
	bus      EventBus
	logger   *log.Logger
}

// NewHumanAgent creates a human agent. Unrecognised replies are published on
// bus as InvalidInputEvents and asked again.
func NewHumanAgent(prompter Prompter, bus EventBus, logger *log.Logger) *HumanAgent {
	return &HumanAgent{
		prompter: prompter,
		bus:      bus,
		logger:   logger.WithPrefix("human"),
	}
}

// Decide keeps asking until the reply classifies as hit or stand. Invalid
// replies do not consume the turn.
func (h *HumanAgent) Decide(ctx context.Context, view TurnView) (Action, error) {
	for {
		reply, err := h.prompter.AskAction(ctx, view.Name)
		if err != nil {
			return Invalid, fmt.Errorf("ask action: %w", err)
		}

		action := ParseAction(reply)
		if action != Invalid {
			h.logger.Debug("Decision", "player", view.Name, "action", action, "score", view.Score)
			return action, nil
		}

		h.logger.Debug("Unrecognised action", "player", view.Name, "reply", reply)
		h.bus.Publish(NewInvalidInputEvent(PromptAction, reply))
	}
}
