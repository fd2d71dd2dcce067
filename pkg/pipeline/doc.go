// Package pipeline drives one export run over a batch of inputs.
//
// For every input, in order, the pipeline opens the structure through the
// store, hands it to the composite renderer together with the established
// output scope and records the outcome. A failing input never stops the
// batch: its error is kept in the report and processing continues with the
// next input.
package pipeline
