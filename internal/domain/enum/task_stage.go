package enum

import (
	"database/sql/driver"
)

// TaskStage is the progress of a single garment work unit
type TaskStage string

const (
	TaskStagePending TaskStage = "pending"
	TaskStageWorking TaskStage = "working"
	TaskStageDone    TaskStage = "done"
)

// IsOpen reports whether the task still has work outstanding
func (s TaskStage) IsOpen() bool {
	return s == TaskStagePending || s == TaskStageWorking
}

func (s TaskStage) IsValid() bool {
	return s == TaskStagePending || s == TaskStageWorking || s == TaskStageDone
}

func (s TaskStage) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TaskStage) Scan(value interface{}) error {
	str, err := scanString(value)
	if err != nil {
		return err
	}
	if str == "" {
		*s = TaskStagePending
		return nil
	}
	*s = TaskStage(str)
	return nil
}
