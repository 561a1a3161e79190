package validator

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/zh"
	ut "github.com/go-playground/universal-translator"
	val "github.com/go-playground/validator/v10"
	enTrans "github.com/go-playground/validator/v10/translations/en"
	zhTrans "github.com/go-playground/validator/v10/translations/zh"
)

var (
	once  sync.Once
	Trans ut.Translator
)

// LazyInitGinValidator 初始化gin binding使用的validator翻译器
// language 支持 zh / en，默认en
func LazyInitGinValidator(language string) {
	once.Do(func() {
		v, ok := binding.Validator.Engine().(*val.Validate)
		if !ok {
			return
		}
		enLoc := en.New()
		zhLoc := zh.New()
		uni := ut.New(enLoc, enLoc, zhLoc)

		switch language {
		case "zh":
			Trans, _ = uni.GetTranslator("zh")
			_ = zhTrans.RegisterDefaultTranslations(v, Trans)
		default:
			Trans, _ = uni.GetTranslator("en")
			_ = enTrans.RegisterDefaultTranslations(v, Trans)
		}
	})
}
