package user

type ApiGroup struct {
	ChatApi   ChatApi
	FaqApi    FaqApi
	WidgetApi WidgetApi
}
