package pipeline

// PlaceholderImage は挿絵を生成できなかったページに入れる小さな暗い PNG です。
const PlaceholderImage = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAQAAAAECAYAAACp8Z5+AAAAAXNSR0IArs4c6QAAABdJREFUGFdjOt3W/58BDBgZ0AG6CkLFnQA1+Qf5gqE2OAAAAABJRU5ErkJggg=="

// Target は挿絵の種類です。
type Target string

const (
	TargetCover Target = "cover"
	TargetPage  Target = "page"
)

// IllustrationResult は挿絵1枚の生成結果です。Err が nil なら ImageURL が有効です。
type IllustrationResult struct {
	Target   Target
	Page     int
	ImageURL string
	Err      error
}

// OK は生成に成功したかどうかを返します。
func (r IllustrationResult) OK() bool {
	return r.Err == nil && r.ImageURL != ""
}

// PageImage はページに入れる画像を返します。失敗時は PlaceholderImage です。
func (r IllustrationResult) PageImage() string {
	if r.OK() {
		return r.ImageURL
	}
	return PlaceholderImage
}
