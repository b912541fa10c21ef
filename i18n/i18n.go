// Package i18n holds the UI message catalog for the two supported languages.
// Keys are the English strings; the English printer falls back to the key itself.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var supported = []language.Tag{language.Chinese, language.English}

var matcher = language.NewMatcher(supported)

var zh = map[string]string{
	"Order Tracker":        "订单跟踪",
	"Login":                "登录",
	"Logout":               "退出",
	"Username":             "用户名",
	"Password":             "密码",
	"Dashboard":            "订单看板",
	"Search":               "搜索",
	"Reset":                "重置",
	"Only missing":         "仅显示缺失订单",
	"Add order":            "新增订单",
	"Edit order":           "编辑订单",
	"Edit":                 "编辑",
	"Save":                 "保存",
	"Cancel":               "取消",
	"Export":               "导出 Excel",
	"Upload":               "上传",
	"Remark":               "备注",
	"Created at":           "创建时间",
	"Actions":              "操作",
	"No orders found.":     "没有找到订单。",
	"Missing in store":     "全库缺失数量",
	"Page not found":       "页面不存在",
	"Something went wrong": "出错了",

	"Invalid credentials":                             "用户名或密码错误",
	"New order added successfully!":                   "新增订单成功！",
	"Order updated successfully!":                     "订单更新成功！",
	"File uploaded and data imported successfully!":   "文件上传并导入成功！",
	"You do not have permission to upload files.":     "您没有上传文件的权限。",
	"No file part":                                    "请求中没有文件",
	"No selected file":                                "未选择文件",
	"Invalid file type. Please upload an Excel file.": "文件类型无效，请上传 Excel 文件。",
	"This form was already submitted.":                "该表单已提交过。",
	"Failed to import data: %s":                       "导入数据失败：%s",
	"Invalid value for: %s":                           "以下字段无效：%s",
	"Imported %s rows.":                               "已导入 %s 行。",
}

func init() {
	for key, msg := range zh {
		_ = message.SetString(language.Chinese, key, msg)
	}
}

// Normalize maps a user-supplied language code onto a supported one, "" if none matches.
func Normalize(code string) string {
	switch code {
	case "en", "zh":
		return code
	}
	return ""
}

// FromAcceptLanguage picks the best supported language for an Accept-Language header.
func FromAcceptLanguage(header, fallback string) string {
	if header == "" {
		return fallback
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return fallback
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return fallback
	}
	base, _ := supported[idx].Base()
	return base.String()
}

// Printer returns a printer for lang ("en" or "zh"); unknown codes print English.
func Printer(lang string) *message.Printer {
	if lang == "zh" {
		return message.NewPrinter(language.Chinese)
	}
	return message.NewPrinter(language.English)
}

// T translates key with optional format arguments.
func T(lang, key string, args ...any) string {
	return Printer(lang).Sprintf(key, args...)
}
