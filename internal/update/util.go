package update

import (
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func dueInputValue(now time.Time) string {
	return model.DefaultDueDate(now).Format(model.DueDateLayout)
}
