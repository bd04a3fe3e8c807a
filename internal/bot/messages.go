package bot

// Reply keyboard labels. Handlers match on these exact strings, so they live
// next to the keyboards that render them.
const (
	btnFeedback    = "Оставить отзыв🧋"
	btnMenu        = "🍹 Меню"
	btnVacancies   = "💼 Вакансии"
	btnCooperation = "🤝 Сотрудничество"
	btnSuggestions = "💡 Предложения"
	btnBack        = "↩️ Назад"

	btnFranchise     = "🏪 Купить франшизу"
	btnOtherQuestion = "❓ Другой вопрос"
	btnSendResume    = "📝 Отправить резюме"
	btnContactAdmin  = "👤 Связаться с администратором"

	btnAdminBroadcast = "📢 Рассылка"
	btnAdminUsers     = "👥 Список пользователей"
	btnAdminStats     = "📊 Статистика"
)

const (
	msgInitial = "Привет, это команда BIBITI мы создали\nбота чтобы помочь вам по всем вопросам."
	msgWelcome = "Выберите интересующий вас раздел:"

	msgSelectLocation = "Выберите адрес:"
	msgRateDrink      = "Понравился ли Вам напиток?"
	msgRateService    = "Понравилось ли Вам обслуживание?"

	msgThanksHighRating = "Команда BIBITI рада, что вы выбрали именно нас,\nспасибо за доверие! 🤍"
	msgThanksFeedback   = "Спасибо за ваш отзыв! Мы обязательно его рассмотрим."
	msgThanksResume     = "Спасибо за отправку резюме! Мы рассмотрим его и свяжемся с вами."

	msgFeedbackDrink   = "Мы хотим стать лучше. Пожалуйста, напишите ваши замечания:"
	msgFeedbackService = "Пожалуйста, расскажите, что именно вам не понравилось. Мы постараемся это исправить:"
	msgFeedbackGeneral = "Пожалуйста напишите нам, что именно нам следует улучшить?"

	msgSuggestions  = "Поделитесь вашими идеями и предложениями.\nДля связи с администратором, напишите: %s"
	msgCooperation  = "Выберите интересующий вас вариант сотрудничества:"
	msgFranchiseAsk = "Для получения информации о франшизе, пожалуйста, опишите ваш запрос:"
	msgQuestionAsk  = "Пожалуйста, опишите ваш вопрос:"

	msgVacancies = "У нас открыты следующие вакансии:\n" +
		"- Бариста\n" +
		"- Администратор\n\n" +
		"Требования:\n" +
		"- Опыт работы от 1 года\n" +
		"- Ответственность\n" +
		"- Коммуникабельность\n\n" +
		"Условия:\n" +
		"- График 2/2\n" +
		"- Достойная оплата\n" +
		"- Дружный коллектив"
	msgResumeAsk    = "Пожалуйста, отправьте ваше краткое резюме:"
	msgContactAdmin = "Для связи с администратором, напишите: %s"

	msgMenuUnavailable = "Извините, меню временно недоступно"

	msgErrorGeneral = "Произошла ошибка. Пожалуйста, попробуйте позже."
)

const (
	adminMsgBroadcastAsk      = "Введите текст сообщения для рассылки:"
	adminMsgBroadcastComplete = "Рассылка завершена\nУспешно: %d\nОшибок: %d"
	adminMsgUsersListCaption  = "Список пользователей сохранен в файл %s"
	adminMsgReplyAsk          = "Введите ответ на обращение %s:"
	adminMsgReplySent         = "✅ Ответ на обращение %s отправлен"
	adminMsgReplyFailed       = "❌ Не удалось отправить ответ на обращение %s"
	adminMsgTicketNotFound    = "Не удалось найти данные обращения."
	adminMsgStatsHeader       = "Средние оценки по точкам:"
	adminMsgStatsLine         = "%s — напиток: %.1f, обслуживание: %.1f (оценок: %d)"
	adminMsgStatsEmpty        = "%s — оценок пока нет"

	adminMsgNewTicket = "Новое обращение #%s\nТип: %s\nОт: %s (@%s)\nСообщение: %s"
	adminMsgNewResume = "Новое резюме #%s\nОт: %s (@%s)\nРезюме:\n%s"
	adminBtnReply     = "Ответить"
)

// userMsgReply wraps an operator reply in the envelope delivered to the
// ticket submitter.
const userMsgReply = "📨 Ответ на ваше обращение %s:\n\n%s"
