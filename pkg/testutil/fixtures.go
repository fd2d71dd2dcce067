package testutil

import "github.com/arthur-debert/model-extract/pkg/kripke"

// TrafficLight returns an untimed three state cycle
func TrafficLight() *kripke.Structure {
	return kripke.New("traffic").
		AddState("red", true, "stop").
		AddState("green", false, "go").
		AddState("yellow", false, "stop", "slow").
		AddEdge("red", "green", "").
		AddEdge("green", "yellow", "").
		AddEdge("yellow", "red", "")
}

// TimedLight returns a light whose phases are bounded by clock c
func TimedLight() *kripke.Structure {
	return kripke.New("timed-light").
		AddClock("c").
		AddState("red", true, "stop").
		AddState("green", false, "go").
		AddEdge("red", "green", "c >= 30", "c").
		AddEdge("green", "red", "c >= 20", "c")
}

// Deadlocked returns a structure with a state without successors
func Deadlocked() *kripke.Structure {
	return kripke.New("deadlock").
		AddState("start", true, "ready").
		AddState("end", false, "done").
		AddEdge("start", "end", "")
}

// TrafficLightYAML is TrafficLight as a document store file
const TrafficLightYAML = `identifier: traffic
states:
  - id: red
    initial: true
    propositions: [stop]
  - id: green
    propositions: [go]
  - id: yellow
    propositions: [stop, slow]
edges:
  - {source: red, target: green}
  - {source: green, target: yellow}
  - {source: yellow, target: red}
`

// TimedLightJSON is TimedLight as a document store file
const TimedLightJSON = `{
  "identifier": "timed-light",
  "clocks": ["c"],
  "states": [
    {"id": "red", "initial": true, "propositions": ["stop"]},
    {"id": "green", "propositions": ["go"]}
  ],
  "edges": [
    {"source": "red", "target": "green", "guard": "c >= 30", "resets": ["c"]},
    {"source": "green", "target": "red", "guard": "c >= 20", "resets": ["c"]}
  ]
}
`
