package language

// Charset names understood by the classic installer. The first name of each
// list is the one the system itself uses for the region.
const (
	macRoman         = "macintosh"
	macCentralEurope = "x-mac-centraleurroman"
	macCyrillic      = "x-mac-cyrillic"
	macUkrainian     = "x-mac-ukrainian"
	macJapanese      = "x-mac-japanese"
	macKorean        = "x-mac-korean"
	macSimpChinese   = "x-mac-simp-chinese"
	macTradChinese   = "x-mac-trad-chinese"
)

var (
	englishLabels = &Labels{
		LanguageName: "English",
		Agree:        "Agree",
		Disagree:     "Disagree",
		Print:        "Print",
		Save:         "Save...",
		Message:      `If you agree with the terms of this license, press "Agree" to install the software.  If you do not agree, press "Disagree".`,
	}
	frenchLabels = &Labels{
		LanguageName: "Français",
		Agree:        "Accepter",
		Disagree:     "Refuser",
		Print:        "Imprimer",
		Save:         "Enregistrer...",
		Message:      `Si vous acceptez les termes de la présente licence, cliquez sur "Accepter" afin d'installer le logiciel. Si vous n'êtes pas d'accord avec les termes de la licence, cliquez sur "Refuser".`,
	}
	germanLabels = &Labels{
		LanguageName: "Deutsch",
		Agree:        "Akzeptieren",
		Disagree:     "Ablehnen",
		Print:        "Drucken",
		Save:         "Sichern...",
		Message:      `Klicken Sie auf "Akzeptieren", wenn Sie mit den Bestimmungen des Software-Lizenzvertrags einverstanden sind. Falls nicht, bitte "Ablehnen" anklicken. Sie können die Software nur installieren, wenn Sie "Akzeptieren" angeklickt haben.`,
	}
	italianLabels = &Labels{
		LanguageName: "Italiano",
		Agree:        "Accetto",
		Disagree:     "Rifiuto",
		Print:        "Stampa",
		Save:         "Registra...",
		Message:      `Se accetti le condizioni di questa licenza, fai clic su "Accetto" per installare il software. Altrimenti fai clic su "Rifiuto".`,
	}
	dutchLabels = &Labels{
		LanguageName: "Nederlands",
		Agree:        "Ja",
		Disagree:     "Nee",
		Print:        "Print",
		Save:         "Bewaar...",
		Message:      `Indien u akkoord gaat met de voorwaarden van deze licentie, kunt u op "Ja" klikken om het programma te installeren. Indien u niet akkoord gaat, klikt u op "Nee".`,
	}
	swedishLabels = &Labels{
		LanguageName: "Svenska",
		Agree:        "Godkänns",
		Disagree:     "Avböjs",
		Print:        "Skriv ut",
		Save:         "Spara...",
		Message:      `Om Du godkänner licensvillkoren klicka på "Godkänns" för att installera programprodukten. Om Du inte godkänner licensvillkoren, klicka på "Avböjs".`,
	}
	spanishLabels = &Labels{
		LanguageName: "Español",
		Agree:        "Aceptar",
		Disagree:     "No aceptar",
		Print:        "Imprimir",
		Save:         "Guardar...",
		Message:      `Si está de acuerdo con los términos de esta licencia, pulse "Aceptar" para instalar el software. Si no está de acuerdo con los términos de esta licencia, pulse "No aceptar".`,
	}
	danishLabels = &Labels{
		LanguageName: "Dansk",
		Agree:        "Enig",
		Disagree:     "Uenig",
		Print:        "Udskriv",
		Save:         "Arkiver...",
		Message:      `Hvis du accepterer betingelserne i licensaftalen, skal du klikke på "Enig" for at installere softwaren. Klik på "Uenig" for at annullere installeringen.`,
	}
	portugueseLabels = &Labels{
		LanguageName: "Português",
		Agree:        "Concordar",
		Disagree:     "Discordar",
		Print:        "Imprimir",
		Save:         "Salvar...",
		Message:      `Se está de acordo com os termos desta licença, pressione "Concordar" para instalar o software. Se não está de acordo, pressione "Discordar".`,
	}
	norwegianLabels = &Labels{
		LanguageName: "Norsk",
		Agree:        "Enig",
		Disagree:     "Ikke enig",
		Print:        "Skriv ut",
		Save:         "Arkiver...",
		Message:      `Hvis De er enig i bestemmelsene i denne lisensavtalen, klikker De på "Enig"-knappen for å installere programvaren. Hvis De ikke er enig, klikker De på "Ikke enig".`,
	}
	finnishLabels = &Labels{
		LanguageName: "Suomi",
		Agree:        "Hyväksyn",
		Disagree:     "En hyväksy",
		Print:        "Tulosta",
		Save:         "Tallenna...",
		Message:      `Hyväksy lisenssisopimuksen ehdot osoittamalla "Hyväksyn". Jos et hyväksy sopimuksen ehtoja, osoita "En hyväksy".`,
	}
	japaneseLabels = &Labels{
		LanguageName: "日本語",
		Agree:        "同意します",
		Disagree:     "同意しません",
		Print:        "印刷する",
		Save:         "保存...",
		Message:      "本ソフトウエア使用許諾契約の条件に同意される場合には、ソフトウエアをインストールするために「同意します」を押してください。同意されない場合には、「同意しません」を押してください。",
	}
	koreanLabels = &Labels{
		LanguageName: "한국어",
		Agree:        "동의",
		Disagree:     "동의 안함",
		Print:        "프린트",
		Save:         "저장...",
		Message:      `사용 계약서의 내용에 동의하면, "동의" 단추를 눌러 소프트웨어를 설치하십시오. 동의하지 않는다면, "동의 안함" 단추를 누르십시오.`,
	}
	simplifiedChineseLabels = &Labels{
		LanguageName: "简体中文",
		Agree:        "同意",
		Disagree:     "不同意",
		Print:        "打印",
		Save:         "存储...",
		Message:      "如果您同意本许可协议的条款，请按“同意”来安装此软件。如果您不同意，请按“不同意”。",
	}
	traditionalChineseLabels = &Labels{
		LanguageName: "繁體中文",
		Agree:        "同意",
		Disagree:     "不同意",
		Print:        "列印",
		Save:         "儲存...",
		Message:      "如果您同意本授權合約的條款，請按「同意」以安裝此軟體。如果不同意，請按「不同意」。",
	}
	russianLabels = &Labels{
		LanguageName: "Русский",
		Agree:        "Согласен",
		Disagree:     "Не согласен",
		Print:        "Печать",
		Save:         "Сохранить...",
		Message:      `Если Вы согласны с условиями данного лицензионного соглашения, нажмите "Согласен" для установки программного обеспечения. Если Вы не согласны, нажмите "Не согласен".`,
	}
)

func tags(t ...string) []string    { return t }
func charsets(c ...string) []string { return c }

// builtin returns a fresh copy of the classic region table.
func builtin() []Language {
	return []Language{
		{ID: 0, Tags: tags("en-US", "en"), Charsets: charsets(macRoman), EnglishName: "English", LocalizedName: "English", Labels: englishLabels},
		{ID: 1, Tags: tags("fr-FR", "fr"), Charsets: charsets(macRoman), EnglishName: "French", LocalizedName: "Français", Labels: frenchLabels},
		{ID: 2, Tags: tags("en-GB"), Charsets: charsets(macRoman), EnglishName: "English (United Kingdom)", LocalizedName: "English (United Kingdom)", Labels: englishLabels},
		{ID: 3, Tags: tags("de-DE", "de"), Charsets: charsets(macRoman), EnglishName: "German", LocalizedName: "Deutsch", Labels: germanLabels},
		{ID: 4, Tags: tags("it-IT", "it"), Charsets: charsets(macRoman), EnglishName: "Italian", LocalizedName: "Italiano", Labels: italianLabels},
		{ID: 5, Tags: tags("nl-NL", "nl"), Charsets: charsets(macRoman), EnglishName: "Dutch", LocalizedName: "Nederlands", Labels: dutchLabels},
		{ID: 6, Tags: tags("nl-BE"), Charsets: charsets(macRoman), EnglishName: "Flemish", LocalizedName: "Vlaams", Labels: dutchLabels},
		{ID: 7, Tags: tags("sv-SE", "sv"), Charsets: charsets(macRoman), EnglishName: "Swedish", LocalizedName: "Svenska", Labels: swedishLabels},
		{ID: 8, Tags: tags("es-ES", "es"), Charsets: charsets(macRoman), EnglishName: "Spanish", LocalizedName: "Español", Labels: spanishLabels},
		{ID: 9, Tags: tags("da-DK", "da"), Charsets: charsets(macRoman), EnglishName: "Danish", LocalizedName: "Dansk", Labels: danishLabels},
		{ID: 10, Tags: tags("pt-PT", "pt"), Charsets: charsets(macRoman), EnglishName: "Portuguese", LocalizedName: "Português", Labels: portugueseLabels},
		{ID: 11, Tags: tags("fr-CA"), Charsets: charsets(macRoman), EnglishName: "French (Canada)", LocalizedName: "Français canadien", Labels: frenchLabels},
		{ID: 12, Tags: tags("nb-NO", "nb", "no"), Charsets: charsets(macRoman), EnglishName: "Norwegian", LocalizedName: "Norsk", Labels: norwegianLabels},
		{ID: 13, Tags: tags("he-IL", "he"), Charsets: charsets("x-mac-hebrew"), EnglishName: "Hebrew", LocalizedName: "עברית"},
		{ID: 14, Tags: tags("ja-JP", "ja"), Charsets: charsets(macJapanese, "shift_jis"), EnglishName: "Japanese", LocalizedName: "日本語", DoubleByte: true, Labels: japaneseLabels},
		{ID: 15, Tags: tags("en-AU"), Charsets: charsets(macRoman), EnglishName: "English (Australia)", LocalizedName: "English (Australia)", Labels: englishLabels},
		{ID: 16, Tags: tags("ar"), Charsets: charsets("x-mac-arabic"), EnglishName: "Arabic", LocalizedName: "العربية"},
		{ID: 17, Tags: tags("fi-FI", "fi"), Charsets: charsets(macRoman), EnglishName: "Finnish", LocalizedName: "Suomi", Labels: finnishLabels},
		{ID: 18, Tags: tags("fr-CH"), Charsets: charsets(macRoman), EnglishName: "French (Switzerland)", LocalizedName: "Français (Suisse)", Labels: frenchLabels},
		{ID: 19, Tags: tags("de-CH"), Charsets: charsets(macRoman), EnglishName: "German (Switzerland)", LocalizedName: "Deutsch (Schweiz)", Labels: germanLabels},
		{ID: 20, Tags: tags("el-GR", "el"), Charsets: charsets("x-mac-greek"), EnglishName: "Greek", LocalizedName: "Ελληνικά"},
		{ID: 21, Tags: tags("is-IS", "is"), Charsets: charsets("x-mac-icelandic"), EnglishName: "Icelandic", LocalizedName: "Íslenska"},
		{ID: 22, Tags: tags("mt-MT", "mt"), Charsets: charsets(macRoman), EnglishName: "Maltese", LocalizedName: "Malti"},
		{ID: 24, Tags: tags("tr-TR", "tr"), Charsets: charsets("x-mac-turkish"), EnglishName: "Turkish", LocalizedName: "Türkçe"},
		{ID: 25, Tags: tags("hr-HR", "hr"), Charsets: charsets("x-mac-croatian"), EnglishName: "Croatian", LocalizedName: "Hrvatski"},
		{ID: 36, Tags: tags("it-CH"), Charsets: charsets(macRoman), EnglishName: "Italian (Switzerland)", LocalizedName: "Italiano (Svizzera)", Labels: italianLabels},
		{ID: 39, Tags: tags("ro-RO", "ro"), Charsets: charsets("x-mac-romanian"), EnglishName: "Romanian", LocalizedName: "Română"},
		{ID: 41, Tags: tags("lt-LT", "lt"), Charsets: charsets(macCentralEurope), EnglishName: "Lithuanian", LocalizedName: "Lietuvių"},
		{ID: 42, Tags: tags("pl-PL", "pl"), Charsets: charsets(macCentralEurope), EnglishName: "Polish", LocalizedName: "Polski"},
		{ID: 43, Tags: tags("hu-HU", "hu"), Charsets: charsets(macCentralEurope), EnglishName: "Hungarian", LocalizedName: "Magyar"},
		{ID: 44, Tags: tags("et-EE", "et"), Charsets: charsets(macCentralEurope), EnglishName: "Estonian", LocalizedName: "Eesti"},
		{ID: 45, Tags: tags("lv-LV", "lv"), Charsets: charsets(macCentralEurope), EnglishName: "Latvian", LocalizedName: "Latviešu"},
		{ID: 49, Tags: tags("ru-RU", "ru"), Charsets: charsets(macCyrillic), EnglishName: "Russian", LocalizedName: "Русский", Labels: russianLabels},
		{ID: 51, Tags: tags("ko-KR", "ko"), Charsets: charsets(macKorean, "euc-kr"), EnglishName: "Korean", LocalizedName: "한국어", DoubleByte: true, Labels: koreanLabels},
		{ID: 52, Tags: tags("zh-CN", "zh-Hans"), Charsets: charsets(macSimpChinese, "gb2312"), EnglishName: "Simplified Chinese", LocalizedName: "简体中文", DoubleByte: true, Labels: simplifiedChineseLabels},
		{ID: 53, Tags: tags("zh-TW", "zh-Hant"), Charsets: charsets(macTradChinese, "big5"), EnglishName: "Traditional Chinese", LocalizedName: "繁體中文", DoubleByte: true, Labels: traditionalChineseLabels},
		{ID: 54, Tags: tags("th-TH", "th"), Charsets: charsets("x-mac-thai"), EnglishName: "Thai", LocalizedName: "ไทย"},
		{ID: 56, Tags: tags("cs-CZ", "cs"), Charsets: charsets(macCentralEurope), EnglishName: "Czech", LocalizedName: "Čeština"},
		{ID: 57, Tags: tags("sk-SK", "sk"), Charsets: charsets(macCentralEurope), EnglishName: "Slovak", LocalizedName: "Slovenčina"},
		{ID: 62, Tags: tags("uk-UA", "uk"), Charsets: charsets(macUkrainian, macCyrillic), EnglishName: "Ukrainian", LocalizedName: "Українська"},
		{ID: 71, Tags: tags("pt-BR"), Charsets: charsets(macRoman), EnglishName: "Portuguese (Brazil)", LocalizedName: "Português do Brasil", Labels: portugueseLabels},
		{ID: 72, Tags: tags("bg-BG", "bg"), Charsets: charsets(macCyrillic), EnglishName: "Bulgarian", LocalizedName: "Български"},
		{ID: 73, Tags: tags("ca-ES", "ca"), Charsets: charsets(macRoman), EnglishName: "Catalan", LocalizedName: "Català"},
		{ID: 79, Tags: tags("cy-GB", "cy"), Charsets: charsets("x-mac-celtic"), EnglishName: "Welsh", LocalizedName: "Cymraeg"},
		{ID: 86, Tags: tags("es-419"), Charsets: charsets(macRoman), EnglishName: "Spanish (Latin America)", LocalizedName: "Español (Latinoamérica)", Labels: spanishLabels},
		{ID: 92, Tags: tags("de-AT"), Charsets: charsets(macRoman), EnglishName: "German (Austria)", LocalizedName: "Deutsch (Österreich)", Labels: germanLabels},
		{ID: 98, Tags: tags("fr-BE"), Charsets: charsets(macRoman), EnglishName: "French (Belgium)", LocalizedName: "Français (Belgique)", Labels: frenchLabels},
		{ID: 101, Tags: tags("nn-NO", "nn"), Charsets: charsets(macRoman), EnglishName: "Norwegian Nynorsk", LocalizedName: "Nynorsk"},
	}
}
