package dialog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// handleMainMenu разводит оператора по сценариям из главного меню
func (m *Manager) handleMainMenu(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)
	text := strings.TrimSpace(ev.Text)

	switch text {
	case btnSearchBarcode:
		return textMsg("Barkodni kiriting:"), StateBarcodeInput, nil

	case btnDollar:
		return keyboardMsg("Dollar kursi menyusi:", dollarMenuKeyboard()), StateDollarMenu, nil

	case btnAddProduct:
		return textMsg("Mahsulot nomini kiriting (name):"), StateAddName, nil

	case btnAllProducts:
		total, err := m.catalog.Count(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		if total == 0 {
			return keyboardMsg("Hozircha hech qanday mahsulot mavjud emas!",
				mainMenuKeyboard(isAdmin)), StateMainMenu, nil
		}
		reply, err := m.renderProductsPage(ctx, 1, false)
		if err != nil {
			return Reply{}, s.State, err
		}
		return reply, StateViewProducts, nil

	case btnReports:
		return keyboardMsg("Hisobot menyusi:", reportsMenuKeyboard()), StateReports, nil

	case btnAdminPanel:
		if !isAdmin {
			return m.denyNonAdmin()
		}
		return keyboardMsg("Admin panel:", adminMenuKeyboard()), StateAdminMenu, nil

	case btnBack:
		return keyboardMsg("Asosiy menyu:", mainMenuKeyboard(isAdmin)), StateMainMenu, nil

	default:
		return keyboardMsg("Iltimos, menyudan tanlang.", mainMenuKeyboard(isAdmin)), StateMainMenu, nil
	}
}

// handleDollarMenu — просмотр и смена курса доллара
func (m *Manager) handleDollarMenu(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)

	switch strings.TrimSpace(ev.Text) {
	case btnRateShow:
		rate, err := m.rates.Rate(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		return keyboardMsg(fmt.Sprintf("Joriy dollar kursi: %v", rate),
			dollarMenuKeyboard()), StateDollarMenu, nil

	case btnRateChange:
		// Менять курс может только админ
		if !isAdmin {
			return keyboardMsg("Siz admin emassiz, kursni o'zgarta olmaysiz!",
				dollarMenuKeyboard()), StateDollarMenu, nil
		}
		return keyboardMsg("Yangi dollar kursini kiriting (masalan, 11000 yoki 10995.5):",
			backKeyboard()), StateRateInput, nil

	case btnBack:
		return keyboardMsg("Asosiy menyuga qaytildi.", mainMenuKeyboard(isAdmin)), StateMainMenu, nil

	default:
		return keyboardMsg("Iltimos, menyudagi tugmalardan birini tanlang.",
			dollarMenuKeyboard()), StateDollarMenu, nil
	}
}

// handleRateInput принимает новое значение курса
func (m *Manager) handleRateInput(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	text := strings.TrimSpace(ev.Text)
	if text == btnBack {
		return keyboardMsg("Dollar kursi menyusiga qaytildi.", dollarMenuKeyboard()), StateDollarMenu, nil
	}

	rate, err := strconv.ParseFloat(text, 64)
	if err != nil || rate <= 0 {
		return keyboardMsg("Iltimos, to'g'ri kurs (raqam) kiriting yoki Orqaga bosing:",
			backKeyboard()), StateRateInput, nil
	}

	if err := m.rates.SetRate(ctx, rate); err != nil {
		return Reply{}, s.State, err
	}
	return keyboardMsg(fmt.Sprintf("Dollar kursi muvaffaqiyatli yangilandi: %v", rate),
		mainMenuKeyboard(m.isAdmin(s.UserID))), StateMainMenu, nil
}

// handleReports — сводка по каталогу
func (m *Manager) handleReports(ctx context.Context, s *Session, ev Event) (Reply, State, error) {
	isAdmin := m.isAdmin(s.UserID)

	switch strings.TrimSpace(ev.Text) {
	case btnReportShow:
		stats, err := m.catalog.Stats(ctx)
		if err != nil {
			return Reply{}, s.State, err
		}
		msg := "Hisobot:\n" +
			fmt.Sprintf("Eng qimmat final_price: %s so'm\n", orNA(stats.MaxPrice)) +
			fmt.Sprintf("Eng arzon final_price: %s so'm\n", orNA(stats.MinPrice)) +
			fmt.Sprintf("Umumiy stock: %v\n", stats.TotalStock) +
			fmt.Sprintf("O'rtacha final_price: %s so'm\n", orNA(stats.AvgPrice))
		return keyboardMsg(msg, reportsMenuKeyboard()), StateReports, nil

	case btnBack:
		return keyboardMsg("Asosiy menyuga qaytdik.", mainMenuKeyboard(isAdmin)), StateMainMenu, nil

	default:
		return keyboardMsg("Noma'lum buyruq.", reportsMenuKeyboard()), StateReports, nil
	}
}

// orNA — каталог без единой цены отдаёт в отчёте "N/A" вместо нуля
func orNA(v *float64) string {
	if v == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
