package pipeline

import (
	"github.com/shouni/go-pixetale/pkg/domain"
)

// Stage は進捗通知がどの工程の完了を表すかを示します。
type Stage string

const (
	StageStoryWritten Stage = "story_written"
	StageCover        Stage = "cover"
	StagePage         Stage = "page"
	StageReady        Stage = "ready"
)

// Update は1工程ごとに公開される進捗です。Story は毎回新しいコピーです。
type Update struct {
	Stage    Stage
	Status   domain.GenerationStatus
	Progress int
	Page     int
	Story    *domain.StoryDocument
}

// ProgressFunc は進捗の通知先です。
type ProgressFunc func(Update)

// QuestRequest は絵本生成の入力です。
type QuestRequest struct {
	Topic    string
	Language domain.Language
	Hero     *domain.HeroTraits
}
