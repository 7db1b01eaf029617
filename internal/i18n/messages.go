package i18n

import "github.com/mamadbah2/herd/internal/validation"

// FieldError renders one validation failure for display.
func (t *Translator) FieldError(lang Lang, fe validation.FieldError) string {
	switch fe.Tag {
	case "max", "gte", "lt":
		return t.T(lang, "validation."+fe.Tag, fe.Param)
	case "gtefield":
		return t.T(lang, "validation.gtefield", t.T(lang, "field."+fe.Param))
	case "required", "oneof", "unique", "date", "datetime", "number", "integer", "exists":
		return t.T(lang, "validation."+fe.Tag)
	default:
		return t.T(lang, "validation.invalid")
	}
}

// FieldErrors renders every failure recorded for field.
func (t *Translator) FieldErrors(lang Lang, errs validation.Errors, field string) []string {
	out := make([]string, 0, len(errs[field]))
	for _, fe := range errs[field] {
		out = append(out, t.FieldError(lang, fe))
	}
	return out
}

// Localize renders every field of errs, as returned by the REST API.
func (t *Translator) Localize(lang Lang, errs validation.Errors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for field := range errs {
		out[field] = t.FieldErrors(lang, errs, field)
	}
	return out
}

var messages = map[Lang]map[string]string{
	Thai: {
		"app.title":         "ระบบจัดการสุขภาพโค",
		"nav.dashboard":     "แดชบอร์ด",
		"nav.list":          "รายการโค",
		"nav.add":           "เพิ่มโค",
		"nav.select":        "บันทึกสุขภาพ",
		"nav.calendar":      "ปฏิทินฟาร์ม",
		"dashboard.total":   "โคทั้งหมด",
		"dashboard.sick":    "ป่วย",
		"dashboard.forsale": "พร้อมขาย",
		"list.search":       "ค้นหาหมายเลขโค",
		"list.all":          "ทั้งหมด",
		"list.empty":        "ไม่พบข้อมูลโค",
		"detail.checks":     "ประวัติการตรวจสุขภาพ",
		"detail.no_checks":  "ยังไม่มีการตรวจสุขภาพ",
		"cattle.unnamed":    "ไม่มีชื่อ",
		"cattle.label":      "ชื่อโค",
		"status.none":       "ยังไม่ตรวจ",

		"status.healthy": "ปกติ",
		"status.sick":    "ป่วย",
		"status.forsale": "พร้อมขาย",
		"gender.male":    "ตัวผู้",
		"gender.female":  "ตัวเมีย",

		"event.feeding":  "ให้อาหาร",
		"event.health":   "ตรวจสุขภาพ",
		"event.breeding": "ผสมพันธุ์",
		"event.other":    "อื่น ๆ",

		"notification.vaccine": "วัคซีน",
		"notification.checkup": "ตรวจสุขภาพ",
		"notification.weight":  "ชั่งน้ำหนัก",
		"notification.other":   "อื่น ๆ",

		"section.healthcheck": "ข้อมูลการตรวจสุขภาพ",
		"section.vaccination": "การฉีดวัคซีน (ถ้ามี)",
		"section.ration":      "สูตรอาหาร (ถ้ามี)",
		"section.event":       "นัดหมายในปฏิทิน (ถ้ามี)",
		"section.add_cattle":  "เพิ่มโคใหม่",

		"field.cattle":        "โค",
		"field.tag_no":        "หมายเลขประจำตัว",
		"field.name":          "ชื่อโค",
		"field.birth_date":    "วันเกิด",
		"field.gender":        "เพศ",
		"field.breed":         "สายพันธุ์",
		"field.category":      "ประเภทโค",
		"field.housing":       "คอก/โรงเรือน",
		"field.mother":        "แม่โค",
		"field.father":        "พ่อโค",
		"field.status":        "สถานะ",
		"field.check_date":    "วันที่ตรวจ",
		"field.temperature":   "อุณหภูมิ (°C)",
		"field.heart_rate":    "อัตราการเต้นของหัวใจ",
		"field.weight":        "น้ำหนัก (กก.)",
		"field.notes":         "หมายเหตุ",
		"field.vaccine_name":  "ชื่อวัคซีน",
		"field.vaccine_date":  "วันที่ฉีด",
		"field.next_due_date": "วันนัดฉีดครั้งถัดไป",
		"field.doctor_name":   "ชื่อผู้ฉีด/หมอ",
		"field.ration_id":     "ชื่อสูตรอาหาร",
		"field.feeding_time":  "เวลาการให้อาหาร",
		"field.fresh_weight":  "น้ำหนักอาหารสด (กก.)",
		"field.dry_weight":    "น้ำหนักอาหารแห้ง (กก.)",
		"field.supplement":    "อาหารเสริม / พรีมิกซ์",
		"field.title":         "ชื่อกิจกรรม",
		"field.start":         "เริ่ม",
		"field.end":           "สิ้นสุด",
		"field.event_type":    "ประเภทกิจกรรม",

		"action.save":            "บันทึก",
		"action.edit":            "แก้ไข",
		"action.delete":          "ลบ",
		"action.cancel":          "ยกเลิก",
		"action.search":          "ค้นหา",
		"action.add_healthcheck": "บันทึกสุขภาพ",
		"action.add_event":       "เพิ่มกิจกรรม",
		"action.confirm_delete":  "ยืนยันการลบ?",

		"flash.created":       "เพิ่มโค %s เรียบร้อยแล้ว",
		"flash.updated":       "แก้ไขข้อมูลโค %s เรียบร้อยแล้ว",
		"flash.deleted":       "ลบโค %s เรียบร้อยแล้ว",
		"flash.health_saved":  "บันทึกข้อมูลสำหรับโค %s เรียบร้อยแล้ว",
		"flash.form_error":    "กรุณาตรวจสอบข้อมูล: มีข้อผิดพลาดในฟอร์ม",
		"flash.forms_error":   "กรุณาตรวจสอบข้อมูล: มีข้อผิดพลาดในบางฟอร์ม",
		"flash.event_saved":   "บันทึกกิจกรรม %s เรียบร้อยแล้ว",
		"flash.event_deleted": "ลบกิจกรรม %s เรียบร้อยแล้ว",

		"validation.required": "กรุณากรอกข้อมูลนี้",
		"validation.max":      "ต้องไม่เกิน %s ตัวอักษร",
		"validation.gte":      "ค่าต้องไม่น้อยกว่า %s",
		"validation.lt":       "ค่าต้องน้อยกว่า %s",
		"validation.oneof":    "ตัวเลือกไม่ถูกต้อง",
		"validation.unique":   "มีโคหมายเลขนี้อยู่แล้ว",
		"validation.gtefield": "ต้องไม่ก่อน%s",
		"validation.date":     "รูปแบบวันที่ไม่ถูกต้อง",
		"validation.datetime": "รูปแบบวันเวลาไม่ถูกต้อง",
		"validation.number":   "กรุณากรอกตัวเลข",
		"validation.integer":  "กรุณากรอกจำนวนเต็ม",
		"validation.exists":   "ไม่พบโคที่เลือก",
		"validation.invalid":  "ข้อมูลไม่ถูกต้อง",

		"reminder.vaccine": "ถึงกำหนดฉีดวัคซีน %s ให้โค %s วันที่ %s",

		"cmd.summary":          "โคทั้งหมด %d ตัว: ป่วย %d, พร้อมขาย %d, ปกติ %d, ยังไม่ตรวจ %d",
		"cmd.sick":             "โคป่วย (%d):",
		"cmd.forsale":          "โคพร้อมขาย (%d):",
		"cmd.none":             "ไม่มี",
		"cmd.not_found":        "ไม่พบโคหมายเลข %s",
		"cmd.status":           "%s: %s (ตรวจล่าสุด %s)",
		"cmd.status_unchecked": "%s: ยังไม่เคยตรวจสุขภาพ",
		"cmd.temperature":      "อุณหภูมิ %s °C",
		"cmd.due":              "วัคซีนที่ถึงกำหนดภายใน %s (%d):",
		"cmd.help":             "คำสั่ง: /summary, /sick, /forsale, /status <หมายเลขโค>, /due [จำนวนวัน]",

		"report.header":       "รายงานโค %s",
		"report.status":       "สถานะ: %s",
		"report.last_check":   "ตรวจล่าสุด: %s",
		"report.counts":       "ตรวจสุขภาพ %d ครั้ง, รักษา %d ครั้ง, ฉีดวัคซีน %d ครั้ง",
		"report.next_vaccine": "วัคซีนครั้งถัดไป: %s (%s)",
		"report.ration":       "สูตรอาหาร: %s เวลา %s",

		"page.dashboard":   "แดชบอร์ด",
		"page.list":        "รายการโค",
		"page.detail":      "ข้อมูลโค",
		"page.add":         "เพิ่มโค",
		"page.edit":        "แก้ไขข้อมูลโค",
		"page.healthcheck": "บันทึกการตรวจสุขภาพ",
		"page.select":      "เลือกโคเพื่อบันทึกสุขภาพ",
		"page.calendar":    "ปฏิทินฟาร์ม",
		"page.add_event":   "เพิ่มกิจกรรม",
		"page.edit_event":  "แก้ไขกิจกรรม",
		"page.error":       "เกิดข้อผิดพลาด",

		"dashboard.healthy": "ปกติ",
		"dashboard.events":  "กิจกรรมในปฏิทิน",
		"list.sick":         "เฉพาะโคป่วย",
		"list.forsale":      "เฉพาะโคพร้อมขาย",
		"calendar.empty":    "ยังไม่มีกิจกรรม",
		"error.not_found":   "ไม่พบข้อมูล",
		"error.internal":    "ระบบขัดข้อง กรุณาลองใหม่อีกครั้ง",
	},
	English: {
		"app.title":         "Cattle Health",
		"nav.dashboard":     "Dashboard",
		"nav.list":          "Cattle",
		"nav.add":           "Add cattle",
		"nav.select":        "Record health",
		"nav.calendar":      "Farm calendar",
		"dashboard.total":   "Total cattle",
		"dashboard.sick":    "Sick",
		"dashboard.forsale": "For sale",
		"list.search":       "Search tag number",
		"list.all":          "All",
		"list.empty":        "No cattle found",
		"detail.checks":     "Health check history",
		"detail.no_checks":  "No health checks yet",
		"cattle.unnamed":    "Unnamed",
		"cattle.label":      "Cattle",
		"status.none":       "Not checked",

		"status.healthy": "Healthy",
		"status.sick":    "Sick",
		"status.forsale": "For sale",
		"gender.male":    "Male",
		"gender.female":  "Female",

		"event.feeding":  "Feeding",
		"event.health":   "Health check",
		"event.breeding": "Breeding",
		"event.other":    "Other",

		"notification.vaccine": "Vaccine",
		"notification.checkup": "Check-up",
		"notification.weight":  "Weighing",
		"notification.other":   "Other",

		"section.healthcheck": "Health check",
		"section.vaccination": "Vaccination (optional)",
		"section.ration":      "Feeding ration (optional)",
		"section.event":       "Calendar event (optional)",
		"section.add_cattle":  "Add new cattle",

		"field.cattle":        "Cattle",
		"field.tag_no":        "Tag number",
		"field.name":          "Name",
		"field.birth_date":    "Birth date",
		"field.gender":        "Gender",
		"field.breed":         "Breed",
		"field.category":      "Category",
		"field.housing":       "Housing",
		"field.mother":        "Mother",
		"field.father":        "Father",
		"field.status":        "Status",
		"field.check_date":    "Check date",
		"field.temperature":   "Temperature (°C)",
		"field.heart_rate":    "Heart rate",
		"field.weight":        "Weight (kg)",
		"field.notes":         "Notes",
		"field.vaccine_name":  "Vaccine",
		"field.vaccine_date":  "Vaccination date",
		"field.next_due_date": "Next due date",
		"field.doctor_name":   "Doctor",
		"field.ration_id":     "Ration name",
		"field.feeding_time":  "Feeding time",
		"field.fresh_weight":  "Fresh weight (kg)",
		"field.dry_weight":    "Dry weight (kg)",
		"field.supplement":    "Supplement / premix",
		"field.title":         "Title",
		"field.start":         "Start",
		"field.end":           "End",
		"field.event_type":    "Event type",

		"action.save":            "Save",
		"action.edit":            "Edit",
		"action.delete":          "Delete",
		"action.cancel":          "Cancel",
		"action.search":          "Search",
		"action.add_healthcheck": "Record health",
		"action.add_event":       "Add event",
		"action.confirm_delete":  "Delete this record?",

		"flash.created":       "Cattle %s added.",
		"flash.updated":       "Cattle %s updated.",
		"flash.deleted":       "Cattle %s deleted.",
		"flash.health_saved":  "Records saved for cattle %s.",
		"flash.form_error":    "Please check the form for errors.",
		"flash.forms_error":   "Please check the forms for errors.",
		"flash.event_saved":   "Event %s saved.",
		"flash.event_deleted": "Event %s deleted.",

		"validation.required": "This field is required.",
		"validation.max":      "Ensure this value has at most %s characters.",
		"validation.gte":      "Ensure this value is greater than or equal to %s.",
		"validation.lt":       "Ensure this value is less than %s.",
		"validation.oneof":    "Select a valid choice.",
		"validation.unique":   "Cattle with this tag number already exists.",
		"validation.gtefield": "Must not be before %s.",
		"validation.date":     "Enter a valid date.",
		"validation.datetime": "Enter a valid date/time.",
		"validation.number":   "Enter a number.",
		"validation.integer":  "Enter a whole number.",
		"validation.exists":   "Select a valid cattle.",
		"validation.invalid":  "Enter a valid value.",

		"reminder.vaccine": "Vaccine %s for cattle %s is due on %s",

		"cmd.summary":          "Herd: %d total, %d sick, %d for sale, %d healthy, %d unchecked",
		"cmd.sick":             "Sick cattle (%d):",
		"cmd.forsale":          "Cattle for sale (%d):",
		"cmd.none":             "None.",
		"cmd.not_found":        "No cattle with tag %s.",
		"cmd.status":           "%s: %s (last check %s)",
		"cmd.status_unchecked": "%s: never checked",
		"cmd.temperature":      "Temperature %s °C",
		"cmd.due":              "Vaccinations due by %s (%d):",
		"cmd.help":             "Commands: /summary, /sick, /forsale, /status <tag>, /due [days]",

		"report.header":       "Report for %s",
		"report.status":       "Status: %s",
		"report.last_check":   "Last check: %s",
		"report.counts":       "%d health checks, %d treatments, %d vaccinations",
		"report.next_vaccine": "Next vaccine: %s (%s)",
		"report.ration":       "Ration: %s at %s",

		"page.dashboard":   "Dashboard",
		"page.list":        "Cattle list",
		"page.detail":      "Cattle details",
		"page.add":         "Add cattle",
		"page.edit":        "Edit cattle",
		"page.healthcheck": "Record health check",
		"page.select":      "Choose cattle to record health",
		"page.calendar":    "Farm calendar",
		"page.add_event":   "Add event",
		"page.edit_event":  "Edit event",
		"page.error":       "Error",

		"dashboard.healthy": "Healthy",
		"dashboard.events":  "Calendar events",
		"list.sick":         "Sick only",
		"list.forsale":      "For sale only",
		"calendar.empty":    "No events yet",
		"error.not_found":   "Not found.",
		"error.internal":    "Something went wrong, please try again.",
	},
}
