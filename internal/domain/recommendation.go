package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

type RecommendationType string

const (
	RecommendGroupTasks   RecommendationType = "group-tasks"
	RecommendMoveTask     RecommendationType = "move-task"
	RecommendEnergyChange RecommendationType = "energy-change"
	RecommendScheduleSlot RecommendationType = "schedule-slot"
	RecommendSimplify     RecommendationType = "simplify"
)

type ActionOp string

const (
	OpChangeEnergyMode ActionOp = "CHANGE_ENERGY_MODE"
	OpCreateBlock      ActionOp = "CREATE_BLOCK"
	OpSuggestPostpone  ActionOp = "SUGGEST_POSTPONE"
	OpFindSlot         ActionOp = "FIND_SLOT"
	OpScheduleSlot     ActionOp = "SCHEDULE_SLOT"
)

// Action is one concrete step of a recommendation. The set of implementations
// is closed to this package.
type Action interface {
	Op() ActionOp
	isAction()
}

type ChangeEnergyMode struct {
	Mode EnergyMode `json:"mode"`
}

type CreateBlock struct {
	TaskIDs         []string    `json:"task_ids"`
	DurationMinutes int         `json:"duration_minutes"`
	ContextType     ContextType `json:"context_type"`
}

type SuggestPostpone struct {
	TaskIDs    []string `json:"task_ids"`
	TargetDate Date     `json:"target_date"`
}

type FindSlot struct {
	TaskID          string `json:"task_id"`
	DurationMinutes int    `json:"duration_minutes"`
}

type ScheduleSlot struct {
	TaskID string    `json:"task_id"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

func (ChangeEnergyMode) Op() ActionOp { return OpChangeEnergyMode }
func (CreateBlock) Op() ActionOp      { return OpCreateBlock }
func (SuggestPostpone) Op() ActionOp  { return OpSuggestPostpone }
func (FindSlot) Op() ActionOp         { return OpFindSlot }
func (ScheduleSlot) Op() ActionOp     { return OpScheduleSlot }

func (ChangeEnergyMode) isAction() {}
func (CreateBlock) isAction()      {}
func (SuggestPostpone) isAction()  {}
func (FindSlot) isAction()         {}
func (ScheduleSlot) isAction()     {}

func (a ChangeEnergyMode) MarshalJSON() ([]byte, error) {
	type payload ChangeEnergyMode
	return marshalWithOp(a.Op(), payload(a))
}

func (a CreateBlock) MarshalJSON() ([]byte, error) {
	type payload CreateBlock
	return marshalWithOp(a.Op(), payload(a))
}

func (a SuggestPostpone) MarshalJSON() ([]byte, error) {
	type payload SuggestPostpone
	return marshalWithOp(a.Op(), payload(a))
}

func (a FindSlot) MarshalJSON() ([]byte, error) {
	type payload FindSlot
	return marshalWithOp(a.Op(), payload(a))
}

func (a ScheduleSlot) MarshalJSON() ([]byte, error) {
	type payload ScheduleSlot
	return marshalWithOp(a.Op(), payload(a))
}

func marshalWithOp(op ActionOp, body any) ([]byte, error) {
	fields, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	head := fmt.Sprintf(`{"op":%q`, op)
	if len(fields) <= 2 {
		return []byte(head + "}"), nil
	}
	return append([]byte(head+","), fields[1:]...), nil
}

// DecodeAction reads a single action object by its op discriminator.
func DecodeAction(data []byte) (Action, error) {
	var head struct {
		Op ActionOp `json:"op"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}

	switch head.Op {
	case OpChangeEnergyMode:
		var a ChangeEnergyMode
		err := json.Unmarshal(data, &a)
		return a, err
	case OpCreateBlock:
		var a CreateBlock
		err := json.Unmarshal(data, &a)
		return a, err
	case OpSuggestPostpone:
		var a SuggestPostpone
		err := json.Unmarshal(data, &a)
		return a, err
	case OpFindSlot:
		var a FindSlot
		err := json.Unmarshal(data, &a)
		return a, err
	case OpScheduleSlot:
		var a ScheduleSlot
		err := json.Unmarshal(data, &a)
		return a, err
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, head.Op)
	}
}

type Recommendation struct {
	ID       string             `json:"id"`
	Type     RecommendationType `json:"type"`
	Title    string             `json:"title"`
	Reason   string             `json:"reason"`
	Actions  []Action           `json:"actions"`
	Priority int                `json:"priority"`
}

func (r *Recommendation) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string             `json:"id"`
		Type     RecommendationType `json:"type"`
		Title    string             `json:"title"`
		Reason   string             `json:"reason"`
		Actions  []json.RawMessage  `json:"actions"`
		Priority int                `json:"priority"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	actions := make([]Action, 0, len(raw.Actions))
	for _, msg := range raw.Actions {
		action, err := DecodeAction(msg)
		if err != nil {
			return err
		}
		actions = append(actions, action)
	}

	*r = Recommendation{
		ID:       raw.ID,
		Type:     raw.Type,
		Title:    raw.Title,
		Reason:   raw.Reason,
		Actions:  actions,
		Priority: raw.Priority,
	}
	return nil
}
