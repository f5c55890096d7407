package filter_test

import (
	"strings"
	"testing"

	"nobaidu/internal/filter"

	"github.com/stretchr/testify/assert"
)

func TestParagraphs_Accept(t *testing.T) {
	t.Parallel()

	f := filter.NewParagraphs()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{
			name: "substantive paragraph passes",
			text: "经过多年的技术积累，该团队终于在本次比赛中取得了突破性的进展，赢得了广泛关注与好评。",
			want: true,
		},
		{
			name: "copyright notice rejected",
			text: "© 2023 版权所有，禁止转载，详情请联系客服微信",
			want: false,
		},
		{
			name: "fifteen characters rejected",
			text: "今天天气很好我们一起去公园散步",
			want: false,
		},
		{
			name: "keyword rejects long text",
			text: "请输入手机号获取验证码以完成注册流程，本平台将严格保护您的个人信息安全不被泄露。",
			want: false,
		},
		{
			name: "embedded link rejected",
			text: "更多内容请访问我们的官方网站 http://example.com 获取最新的产品发布信息和技术文档。",
			want: false,
		},
		{
			name: "length counts characters not bytes",
			text: strings.Repeat("字", 19),
			want: false,
		},
		{
			name: "exactly minimum length passes",
			text: strings.Repeat("字", 20),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, f.Accept(tt.text))
		})
	}
}

func TestParagraphs_RejectsEveryKeywordRegardlessOfLength(t *testing.T) {
	t.Parallel()

	f := filter.NewParagraphs()
	padding := strings.Repeat("正文内容", 20)
	for _, kw := range filter.DefaultKeywords {
		assert.False(t, f.Accept(padding+kw+padding), "keyword %q", kw)
	}
}

func TestParagraphs_ApplyIsIdempotent(t *testing.T) {
	t.Parallel()

	f := filter.NewParagraphs()
	in := []string{
		"太短",
		"经过多年的技术积累，该团队终于在本次比赛中取得了突破性的进展，赢得了广泛关注与好评。",
		"扫描二维码下载客户端，立即领取新人专享红包，提现秒到账，活动时间有限先到先得。",
		"研究人员指出，这一发现将有助于理解早期宇宙中星系的形成过程以及暗物质的分布情况。",
		"see https://example.com/docs for the complete reference manual and tutorials",
	}

	once := f.Apply(in)
	twice := f.Apply(once)

	assert.Len(t, once, 2)
	assert.Equal(t, once, twice)
}
