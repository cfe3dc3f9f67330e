package model

// BuildState はフォレスト構築の状態を表す
type BuildState int

const (
	// NotStarted は構築がまだ始まっていない状態
	NotStarted BuildState = iota
	// InProgress は構築中の状態
	InProgress
	// Succeeded は全ての木の学習が成功した状態
	Succeeded
	// Failed は少なくとも1本の木の学習が失敗した状態
	Failed
)

// String は状態の文字列表現を返す
func (s BuildState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case InProgress:
		return "in_progress"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal は構築が終了状態に達しているかどうかを返す
func (s BuildState) IsTerminal() bool {
	return s == Succeeded || s == Failed
}
