// Package game implements the twenty-one game engine: hand scoring, the
// participants, the round state machine and the session loop.
//
// # Basic Usage
//
// A session needs an RNG for the deck and a Prompter, the input boundary
// the engine asks for names, wagers, actions and replay answers:
//
//	rng := randutil.New(42)
//	s := game.NewSession(rng, prompter,
//	    game.WithStartingBalance(100),
//	    game.WithWager(10))
//	summary, err := s.Run(ctx)
//
// Output is published on an EventBus. Subscribe a renderer to show status
// reports and outcomes:
//
//	bus := game.NewEventBus()
//	bus.Subscribe(display.New(os.Stdout))
//	s := game.NewSession(rng, prompter, game.WithEventBus(bus))
//
// # Deterministic Testing
//
// A stacked deck deals cards in a fixed order, and a scripted Prompter
// feeds replies without a terminal:
//
//	s := game.NewSession(rng, prompter,
//	    game.WithDeckFactory(func() *deck.Deck {
//	        return deck.NewStackedDeck(deck.MustParseCards("Kh 9s 7d")...)
//	    }))
//
// # Architecture
//
// Session owns the two participants and the wager across rounds. Each round
// is a Round, a state machine (DealingOpening, TurnLoop, Resolving, Done)
// that asks each seat's Agent for one decision per rotation. Agents only
// decide; the Round applies the decision to the hand.
package game
