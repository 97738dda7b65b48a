package dto

import (
	"MindGarden/internal/model"
	"MindGarden/internal/pkg/util"
	"errors"
	"time"

	"github.com/jinzhu/copier"
)

// copyOption renders time.Time into string fields as a calendar date.
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{
		{
			SrcType: time.Time{},
			DstType: copier.String,
			Fn: func(src interface{}) (interface{}, error) {
				t, ok := src.(time.Time)
				if !ok {
					return nil, errors.New("src type not matching")
				}
				return util.FormatDate(t), nil
			},
		},
	},
}

func ToHabitDTO(habit *model.Habit) (*HabitDTO, error) {
	out := &HabitDTO{}
	if err := copier.CopyWithOption(out, habit, copyOption); err != nil {
		return nil, err
	}
	return out, nil
}

func ToCheckinDTO(checkin *model.Checkin) (*CheckinDTO, error) {
	out := &CheckinDTO{}
	if err := copier.CopyWithOption(out, checkin, copyOption); err != nil {
		return nil, err
	}
	if out.HabitResults == nil {
		out.HabitResults = make([]HabitResultDTO, 0)
	}
	return out, nil
}

func ToInsightDTO(insight *model.Insight) (*InsightDTO, error) {
	out := &InsightDTO{}
	if err := copier.CopyWithOption(out, insight, copyOption); err != nil {
		return nil, err
	}
	streaks, err := model.DecodeHabitStreaks(insight.HabitStreaksJSON)
	if err != nil {
		return nil, err
	}
	out.HabitStreaks = streaks
	return out, nil
}
