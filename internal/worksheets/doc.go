// Package worksheets serves the pre-authored static exercise bank. The UI
// layer drains a learner's worksheet pool for a given exercise type and
// level before it ever asks the orchestrator to generate; the rotator's
// exhaustion signal is the trigger for falling through to generation. The
// bank also supplies the worked examples embedded in generation prompts.
package worksheets
