package route

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/questgen/internal/domain"
)

// phraseGroup is one row of an axis table: any of the phrases selects label.
type phraseGroup struct {
	label   string
	phrases []string
}

// patternGroup is one row of an axis table expressed as a raw pattern.
type patternGroup struct {
	label   string
	pattern string
}

// rule is a compiled table row. Tables are evaluated top to bottom and the
// first matching rule wins.
type rule struct {
	re    *regexp.Regexp
	label string
}

type ruleTable []rule

func (t ruleTable) match(s string) (string, bool) {
	for _, r := range t {
		if r.re.MatchString(s) {
			return r.label, true
		}
	}
	return "", false
}

func compilePhrases(groups []phraseGroup) ruleTable {
	table := make(ruleTable, 0, len(groups))
	for _, g := range groups {
		quoted := make([]string, 0, len(g.phrases))
		for _, p := range g.phrases {
			quoted = append(quoted, regexp.QuoteMeta(p))
		}
		table = append(table, rule{
			re:    regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")"),
			label: g.label,
		})
	}
	return table
}

func compilePatterns(groups []patternGroup) ruleTable {
	table := make(ruleTable, 0, len(groups))
	for _, g := range groups {
		table = append(table, rule{re: regexp.MustCompile("(?i)" + g.pattern), label: g.label})
	}
	return table
}

var stateRules = []patternGroup{
	{string(domain.StateAvoidanceRefusal), `(?:회사|사무실|출근|업무|일|공부|운동|청소)\s*(?:하기|가기|가는\s*거|하는\s*거)?\s*싫|아무것도\s*하기\s*싫|하기\s*싫`},
	{string(domain.StateStartDelay), `시작이\s*안|시작을\s*못|미루|미뤄|미룬|손이\s*안|엄두가\s*안`},
	{string(domain.StateBlocked), `막혔|막혀|막막|어려워|어렵|모르겠`},
	{string(domain.StateFatigued), `피곤|지쳤|지쳐|무기력|졸려|기운이\s*없|번아웃`},
	{string(domain.StateCompletionPush), `마감|끝내|완료|마무리|제출`},
	{string(domain.StateResetNeeded), `리셋|정리가?\s*필요|환기|머리\s*식히`},
}

var timeRules = []phraseGroup{
	{string(domain.TimePreEvent), []string{"약속 전", "회의 전", "발표 전", "면접 전", "출발 전", "시험 전", "행사 전", "나가기 전"}},
	{string(domain.TimePostEvent), []string{"약속 후", "회의 후", "발표 후", "행사 후", "다녀와서", "갔다 와서", "끝나고 나서"}},
	{string(domain.TimeWeekendNight), []string{"주말 밤", "금요일 밤", "토요일 밤", "일요일 밤", "주말 저녁"}},
	{string(domain.TimeWeekendAM), []string{"주말 아침", "주말 오전", "토요일 아침", "토요일 오전", "일요일 아침", "일요일 오전"}},
	{string(domain.TimeWeekendPM), []string{"주말 오후", "주말", "토요일", "일요일"}},
	{string(domain.TimeCommute), []string{"출근길", "퇴근길", "지하철", "버스", "통근", "출퇴근"}},
	{string(domain.TimeEvening), []string{"퇴근 후", "퇴근하고", "저녁"}},
	{string(domain.TimeMorning), []string{"아침", "기상", "일어나서", "모닝"}},
	{string(domain.TimeLunch), []string{"점심", "식후", "낮잠"}},
	{string(domain.TimeWorkAM), []string{"오전", "출근 후", "업무 시작"}},
	{string(domain.TimeWorkPM), []string{"오후", "업무 중", "근무 중"}},
	{string(domain.TimeNight), []string{"자기 전", "잠들기 전", "새벽", "야간", "밤"}},
}

var domainRules = []phraseGroup{
	{string(domain.DomainNonRoutine), []string{"여행", "캠핑", "파티", "콘서트", "공연", "축제", "이사", "결혼식", "나들이", "휴가"}},
	{string(domain.DomainRecoveryHealth), []string{"피곤", "수면", "잠들", "잠자", "스트레칭", "운동", "휴식", "명상", "산책", "건강", "힐링", "쉬고", "무기력"}},
	{string(domain.DomainLifeOps), []string{"청소", "빨래", "설거지", "정리", "장보기", "요리", "집안일", "분리수거", "세탁", "정돈"}},
	{string(domain.DomainProductivityGrowth), []string{"공부", "업무", "코딩", "보고서", "과제", "시험", "독서", "글쓰기", "회의", "발표", "개발", "마감"}},
}

var personaRules = []phraseGroup{
	{string(domain.PersonaTravel), []string{"여행", "출장", "캠핑", "비행기", "숙소", "짐 싸"}},
	{string(domain.PersonaEntertainment), []string{"게임", "영화", "드라마", "콘서트", "공연", "파티", "넷플릭스"}},
	{string(domain.PersonaExercise), []string{"운동", "헬스", "러닝", "조깅", "요가", "스트레칭", "필라테스"}},
	{string(domain.PersonaStudent), []string{"공부", "시험", "과제", "수업", "강의", "학교", "숙제"}},
	{string(domain.PersonaDeveloper), []string{"코딩", "개발", "코드", "버그", "배포", "리팩토링", "디버깅"}},
	{string(domain.PersonaWriter), []string{"글쓰기", "원고", "블로그", "에세이", "일기"}},
	{string(domain.PersonaHomemaker), []string{"청소", "빨래", "설거지", "집안일", "장보기", "요리", "분리수거"}},
	{string(domain.PersonaOfficeWorker), []string{"회사", "사무실", "보고서", "회의", "메일", "출근", "업무"}},
	{string(domain.PersonaWorker), []string{"일하", "일 하", "작업", "근무", "알바", "현장"}},
}

// leisureRules flag a non-routine activity regardless of domain or persona.
var leisureRules = []phraseGroup{
	{string(domain.TypeNonRoutine), []string{"여행", "파티", "행사", "이벤트", "축제", "나들이", "데이트", "공연", "약속"}},
}

// defaultPersonaByDomain is consulted when no persona rule matches.
var defaultPersonaByDomain = map[domain.RouteDomain]domain.Persona{
	domain.DomainRecoveryHealth:     domain.PersonaWorker,
	domain.DomainProductivityGrowth: domain.PersonaOfficeWorker,
	domain.DomainLifeOps:            domain.PersonaHomemaker,
	domain.DomainNonRoutine:         domain.PersonaTravel,
}

var (
	stateTable   = compilePatterns(stateRules)
	timeTable    = compilePhrases(timeRules)
	domainTable  = compilePhrases(domainRules)
	personaTable = compilePhrases(personaRules)
	leisureTable = compilePhrases(leisureRules)
)
