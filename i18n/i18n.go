// Package i18n holds the user-visible messages shown for validation, storage
// and session failures. Russian is the shop's working language and the
// fallback for anything unknown.
package i18n

import (
	"context"
	"strings"
)

const (
	LangRU      = "ru"
	LangEN      = "en"
	DefaultLang = LangRU
)

var messages = map[string]map[string]string{
	LangRU: {
		"required":                 "Обязательное поле",
		"invalid_number":           "Некорректное числовое значение",
		"must_be_non_negative":     "Значение не может быть отрицательным",
		"invalid_integer":          "Ожидается целое число",
		"invalid_date":             "Дата должна быть в формате ГГГГ-ММ-ДД",
		"invalid_id":               "Некорректный идентификатор",
		"too_long":                 "Слишком длинное значение",
		"validation_failed":        "Заполните обязательные поля",
		"not_found":                "Запись не найдена",
		"storage_error":            "Ошибка базы данных",
		"duplicate_invoice_number": "Накладная с таким номером уже существует",
		"auth_required":            "Требуется вход в систему",
		"invalid_credentials":      "Неверный логин или пароль",
		"confirmation_required":    "Подтвердите удаление",
		"backup_failed":            "Ошибка создания резервной копии",
		"restore_failed":           "Ошибка восстановления",
		"invalid_backup_file":      "Выберите файл резервной копии с расширением .db",
		"help_open_failed":         "Ошибка открытия справки. Попробуйте открыть ссылку вручную",
		"unknown_report":           "Неизвестный отчет",
		"internal_error":           "Внутренняя ошибка",
		"invalid_request":          "Некорректный запрос",
		"not_specified":            "Не указан",
		"report_stock":             "Отчет по остаткам товаров",
		"report_sales":             "Отчет по продажам",
		"report_turnover":          "Оборотная ведомость",
		"report_suppliers":         "Отчет по поставщикам",
		"col_name":                 "Наименование",
		"col_category":             "Категория",
		"col_quantity":             "Количество",
		"col_min_quantity":         "Мин. количество",
		"col_price":                "Цена",
		"col_low_stock":            "Мало на складе",
		"col_invoice_number":       "Номер накладной",
		"col_date":                 "Дата",
		"col_customer":             "Покупатель",
		"col_amount":               "Сумма",
		"col_contact":              "Контактное лицо",
		"col_phone":                "Телефон",
		"col_invoice_count":        "Количество накладных",
		"col_indicator":            "Показатель",
		"col_value":                "Значение",
		"total_products":           "Всего товаров",
		"low_stock_count":          "Товаров с низким остатком",
		"total_value":              "Общая стоимость",
		"invoice_count":            "Количество накладных",
		"total_amount":             "Общая сумма",
		"income_count":             "Приходных накладных",
		"income_total":             "Сумма прихода",
		"outcome_count":            "Расходных накладных",
		"outcome_total":            "Сумма расхода",
		"turnover":                 "Оборот",
		"period":                   "Период",
		"generated_at":             "Дата формирования",
		"yes":                      "Да",
		"no":                       "Нет",
	},
	LangEN: {
		"required":                 "Required",
		"invalid_number":           "Invalid number",
		"must_be_non_negative":     "Must not be negative",
		"invalid_integer":          "Whole number expected",
		"invalid_date":             "Date must be YYYY-MM-DD",
		"invalid_id":               "Invalid identifier",
		"too_long":                 "Value too long",
		"validation_failed":        "Fill in the required fields",
		"not_found":                "Record not found",
		"storage_error":            "Database error",
		"duplicate_invoice_number": "An invoice with this number already exists",
		"auth_required":            "Please log in",
		"invalid_credentials":      "Invalid username or password",
		"confirmation_required":    "Please confirm the deletion",
		"backup_failed":            "Backup failed",
		"restore_failed":           "Restore failed",
		"invalid_backup_file":      "Select a backup file with the .db extension",
		"help_open_failed":         "Could not open help. Try opening the link manually",
		"unknown_report":           "Unknown report",
		"internal_error":           "Internal error",
		"invalid_request":          "Invalid request",
		"not_specified":            "Not specified",
		"report_stock":             "Stock report",
		"report_sales":             "Sales report",
		"report_turnover":          "Turnover statement",
		"report_suppliers":         "Suppliers report",
		"col_name":                 "Name",
		"col_category":             "Category",
		"col_quantity":             "Quantity",
		"col_min_quantity":         "Min. quantity",
		"col_price":                "Price",
		"col_low_stock":            "Low stock",
		"col_invoice_number":       "Invoice number",
		"col_date":                 "Date",
		"col_customer":             "Customer",
		"col_amount":               "Amount",
		"col_contact":              "Contact person",
		"col_phone":                "Phone",
		"col_invoice_count":        "Invoices",
		"col_indicator":            "Indicator",
		"col_value":                "Value",
		"total_products":           "Total products",
		"low_stock_count":          "Low-stock products",
		"total_value":              "Inventory value",
		"invoice_count":            "Invoices",
		"total_amount":             "Total amount",
		"income_count":             "Income invoices",
		"income_total":             "Income total",
		"outcome_count":            "Outcome invoices",
		"outcome_total":            "Outcome total",
		"turnover":                 "Turnover",
		"period":                   "Period",
		"generated_at":             "Generated",
		"yes":                      "Yes",
		"no":                       "No",
	},
}

// T translates code into lang, falling back to the default language and
// then to the code itself.
func T(lang, code string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLang][code]; ok {
		return s
	}
	return code
}

// Supported reports whether lang has a message table.
func Supported(lang string) bool {
	_, ok := messages[lang]
	return ok
}

// DetectLanguage picks the first supported primary tag of an
// Accept-Language header.
func DetectLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		primary := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if Supported(primary) {
			return primary
		}
	}
	return DefaultLang
}

type langKey struct{}

// WithLang stores the language preference in ctx.
func WithLang(ctx context.Context, lang string) context.Context {
	return context.WithValue(ctx, langKey{}, lang)
}

// LangFrom returns the language stored in ctx or the default.
func LangFrom(ctx context.Context) string {
	if v, ok := ctx.Value(langKey{}).(string); ok && v != "" {
		return v
	}
	return DefaultLang
}
