// Package chatbot implements the rule-based agricultural assistant.
// Intent detection is keyword scoring over pattern groups, entities
// are pulled from the plant database, and each intent has a dedicated
// response builder. No external model is involved.
package chatbot

import (
	"math/rand"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lingaraj8064/Crop-AI-Sys/cache"
	"github.com/Lingaraj8064/Crop-AI-Sys/plantdb"
)

// SessionTTL is how long an idle conversation keeps its context.
const SessionTTL = 2 * time.Hour

// Reply is one bot turn: the text to show, the matched intent, how
// confident the match was and the quick replies to offer next.
type Reply struct {
	Text        string
	Type        string
	Confidence  float64
	Suggestions []string
}

// sessionContext carries the little state the bot keeps between turns.
type sessionContext struct {
	LastIntent string
	Turn       int
}

type entities struct {
	Plant       *plantdb.Plant
	Disease     *plantdb.Disease
	DiseaseHost *plantdb.Plant
	Season      string
	ProblemWord string
}

type Bot struct {
	plants   *plantdb.DB
	contexts *cache.Cache

	mu  sync.Mutex
	rng *rand.Rand
}

func New(plants *plantdb.DB, contexts *cache.Cache) *Bot {
	return &Bot{
		plants:   plants,
		contexts: contexts,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Process handles one user message for a session and returns the
// bot's reply. Context (last intent, turn count) persists per session
// until SessionTTL of inactivity.
func (b *Bot) Process(sessionID, message string) Reply {
	cleaned := preprocess(message)
	ctx := b.sessionContext(sessionID)

	intent, confidence := b.detectIntent(cleaned, ctx)
	ents := b.extractEntities(cleaned)

	reply := b.respond(intent, ents, cleaned, ctx)
	reply.Type = intent
	reply.Confidence = confidence

	ctx.LastIntent = intent
	ctx.Turn++
	b.contexts.Set(sessionID, ctx, SessionTTL)

	return reply
}

// ClearSession drops the stored context for a session.
func (b *Bot) ClearSession(sessionID string) {
	b.contexts.Delete(sessionID)
}

func (b *Bot) sessionContext(sessionID string) *sessionContext {
	if v, ok := b.contexts.Get(sessionID); ok {
		if ctx, ok := v.(*sessionContext); ok {
			return ctx
		}
	}
	return &sessionContext{}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

var contractions = [][2]string{
	{"what's", "what is"},
	{"how's", "how is"},
	{"can't", "cannot"},
	{"won't", "will not"},
	{"don't", "do not"},
	{"doesn't", "does not"},
}

func preprocess(message string) string {
	cleaned := strings.ToLower(strings.TrimSpace(message))
	cleaned = whitespaceRe.ReplaceAllString(cleaned, " ")
	for _, c := range contractions {
		cleaned = strings.ReplaceAll(cleaned, c[0], c[1])
	}
	return cleaned
}

// intentPatterns maps each intent onto groups of keywords. A group
// scores matched/total, multi-keyword hits get a 1.2x boost, and a
// repeated intent from the previous turn gets a 1.1x boost.
var intentPatterns = map[string][][]string{
	"greeting": {
		{"hello", "hi", "hey"},
		{"good morning", "good afternoon"},
		{"greetings"},
	},
	"plant_identification": {
		{"what", "plant", "is"},
		{"identify", "plant"},
		{"what", "type", "plant"},
		{"plant", "name"},
		{"upload", "photo"},
		{"upload", "image"},
	},
	"disease_symptoms": {
		{"symptoms", "disease"},
		{"what", "wrong", "plant"},
		{"leaves", "yellow", "brown"},
		{"spots", "leaves"},
		{"dying", "wilting"},
	},
	"treatment_advice": {
		{"how", "treat"},
		{"treatment", "disease"},
		{"cure", "fix"},
		{"medicine", "fungicide"},
	},
	"growing_conditions": {
		{"growing", "conditions"},
		{"how", "grow"},
		{"soil", "requirements"},
		{"temperature", "climate"},
		{"care", "tips"},
	},
	"pest_management": {
		{"pest", "control"},
		{"insects", "bugs"},
		{"aphids", "caterpillars"},
		{"natural", "pest"},
	},
	"soil_management": {
		{"soil", "ph"},
		{"compost", "fertilizer"},
		{"soil", "test"},
		{"nutrients"},
	},
	"watering_irrigation": {
		{"water", "irrigation"},
		{"how", "often", "water"},
		{"overwatering", "underwatering"},
		{"drip", "irrigation"},
	},
	"fertilization": {
		{"fertilize", "fertilizer"},
		{"nutrients", "feeding"},
		{"nitrogen", "phosphorus", "potassium"},
		{"organic", "fertilizer"},
	},
	"harvesting": {
		{"harvest", "harvesting"},
		{"when", "ready"},
		{"ripe", "mature"},
		{"pick", "picking"},
	},
	"seasonal_care": {
		{"spring", "summer", "fall", "winter"},
		{"seasonal", "care"},
		{"season", "tasks"},
		{"monthly", "care"},
	},
	"organic_farming": {
		{"organic", "natural"},
		{"chemical", "free"},
		{"sustainable", "farming"},
		{"organic", "methods"},
	},
}

// intentOrder fixes the scan order so equal-confidence ties always
// resolve to the same intent.
var intentOrder = func() []string {
	names := make([]string, 0, len(intentPatterns))
	for name := range intentPatterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}()

func (b *Bot) detectIntent(message string, ctx *sessionContext) (string, float64) {
	bestIntent := "general"
	bestConfidence := 0.0

	for _, intent := range intentOrder {
		groups := intentPatterns[intent]
		for _, group := range groups {
			matches := 0
			for _, keyword := range group {
				if strings.Contains(message, keyword) {
					matches++
				}
			}
			if len(group) == 0 {
				continue
			}

			confidence := float64(matches) / float64(len(group))
			if matches > 1 {
				confidence *= 1.2
			}
			if ctx.LastIntent == intent {
				confidence *= 1.1
			}

			if confidence > bestConfidence {
				bestConfidence = confidence
				bestIntent = intent
			}
		}
	}

	if bestConfidence > 1.0 {
		bestConfidence = 1.0
	}
	return bestIntent, bestConfidence
}

var seasons = []string{"spring", "summer", "fall", "autumn", "winter"}

var problemWords = []string{"problem", "issue", "disease", "pest", "dying", "wilting", "spots", "yellow", "brown"}

func (b *Bot) extractEntities(message string) entities {
	var ents entities

	for _, p := range b.plants.All() {
		if strings.Contains(message, strings.ToLower(p.Name)) {
			plant := p
			ents.Plant = &plant
			break
		}
	}

	for _, entry := range b.plants.AllDiseases() {
		if strings.Contains(message, strings.ToLower(entry.Disease.Name)) {
			disease := entry.Disease
			ents.Disease = &disease
			if host, ok := b.plants.Get(entry.PlantID); ok {
				ents.DiseaseHost = &host
			}
			break
		}
	}

	for _, season := range seasons {
		if strings.Contains(message, season) {
			if season == "autumn" {
				season = "fall"
			}
			ents.Season = season
			break
		}
	}

	for _, word := range problemWords {
		if strings.Contains(message, word) {
			ents.ProblemWord = word
			break
		}
	}

	return ents
}

func (b *Bot) respond(intent string, ents entities, message string, ctx *sessionContext) Reply {
	switch intent {
	case "greeting":
		return b.handleGreeting()
	case "plant_identification":
		return b.handlePlantIdentification(ents)
	case "disease_symptoms":
		return b.handleDiseaseSymptoms(ents)
	case "treatment_advice":
		return b.handleTreatmentAdvice(ents)
	case "growing_conditions":
		return b.handleGrowingConditions(ents)
	case "pest_management":
		return b.handlePestManagement(ents)
	case "soil_management":
		return b.handleSoilManagement(ents)
	case "watering_irrigation":
		return b.handleWateringIrrigation(ents)
	case "fertilization":
		return b.handleFertilization(ents)
	case "harvesting":
		return b.handleHarvesting(ents)
	case "seasonal_care":
		return b.handleSeasonalCare(ents)
	case "organic_farming":
		return b.handleOrganicFarming()
	default:
		return b.handleGeneral(message)
	}
}

var greetings = []string{
	"Hello! I'm your agricultural AI assistant. How can I help you with your crops today?",
	"Hi there! I'm here to help with all your farming and gardening questions. What would you like to know?",
	"Welcome! I can assist you with plant diseases, growing tips, soil management, and more. What's on your mind?",
	"Greetings! I'm ready to help you with agricultural advice and crop management. How can I assist you?",
}

func (b *Bot) handleGreeting() Reply {
	b.mu.Lock()
	text := greetings[b.rng.Intn(len(greetings))]
	b.mu.Unlock()

	return Reply{
		Text: text,
		Suggestions: []string{
			"Identify a plant disease",
			"Get growing tips for a specific plant",
			"Learn about soil management",
			"Ask about pest control",
		},
	}
}

func (b *Bot) handlePlantIdentification(ents entities) Reply {
	if ents.Plant != nil {
		p := ents.Plant
		var sb strings.Builder
		sb.WriteString("I can help you with " + p.Name + " (" + p.ScientificName + ")! ")
		sb.WriteString("This is a " + strings.ToLower(p.Category) + " that belongs to the " + p.Family + " family. ")
		sb.WriteString("It grows best in " + strings.ToLower(p.SoilConditions.Drainage) + ". ")
		sb.WriteString("What specific information would you like to know about this plant?")

		return Reply{
			Text: sb.String(),
			Suggestions: []string{
				"Growing conditions for " + p.Name,
				"Common diseases of " + p.Name,
				"Care instructions for " + p.Name,
				"Harvesting tips for " + p.Name,
			},
		}
	}

	return Reply{
		Text: "I can help you identify plants! You can either upload an image using the disease detection feature above, or describe the plant you're curious about. For a photo: click or drag an image into the upload area, check the preview, then press Analyze.",
		Suggestions: []string{
			"Upload a plant image",
			"Ask about apple trees",
			"Ask about tomato plants",
			"Ask about corn crops",
		},
	}
}

func (b *Bot) handleDiseaseSymptoms(ents entities) Reply {
	if ents.Disease != nil && ents.DiseaseHost != nil {
		d := ents.Disease
		text := d.Name + " in " + ents.DiseaseHost.Name + " shows these symptoms: " + d.Symptoms + ". " +
			"This is caused by " + d.Causes + ". " +
			"The severity level is " + d.Severity + "."

		return Reply{
			Text: text,
			Suggestions: []string{
				"Treatment for " + d.Name,
				"Prevention of " + d.Name,
				"Immediate action for " + d.Name,
			},
		}
	}

	var text string
	if ents.Plant != nil {
		text = "Common diseases in " + ents.Plant.Name + " include various fungal, bacterial, and viral infections. " +
			"The most frequent symptoms to watch for are discolored leaves, spots, wilting, unusual growths, or stunted development. " +
			"Could you describe the specific symptoms you're seeing?"
	} else {
		text = "Disease symptoms can vary widely, but common signs include:\n" +
			"• Discolored or spotted leaves (yellow, brown, black spots)\n" +
			"• Wilting or drooping despite adequate water\n" +
			"• Unusual growths or galls\n" +
			"• Stunted or distorted growth\n" +
			"• Premature leaf drop\n\n" +
			"Which plant are you concerned about, and what symptoms are you observing?"
	}

	return Reply{
		Text: text,
		Suggestions: []string{
			"Upload an image for disease detection",
			"Ask about specific plant diseases",
			"Learn about disease prevention",
		},
	}
}

func (b *Bot) handleTreatmentAdvice(ents entities) Reply {
	if ents.Disease != nil && ents.DiseaseHost != nil {
		d := ents.Disease
		var sb strings.Builder
		sb.WriteString("Treatment for " + d.Name + " in " + ents.DiseaseHost.Name + ":\n\n")
		sb.WriteString("Immediate action: " + d.ImmediateAction + "\n\n")
		sb.WriteString("Treatment steps:\n")
		for i, step := range d.Treatment {
			if i >= 4 {
				break
			}
			sb.WriteString(strconv.Itoa(i+1) + ". " + step + "\n")
		}
		if len(d.OrganicTreatment) > 0 {
			sb.WriteString("\nOrganic options:\n")
			for i, step := range d.OrganicTreatment {
				if i >= 3 {
					break
				}
				sb.WriteString("• " + step + "\n")
			}
		}

		return Reply{
			Text: sb.String(),
			Suggestions: []string{
				"Prevention tips for " + d.Name,
				"Organic treatment options",
				"When to seek professional help",
			},
		}
	}

	text := "For effective disease treatment, I need to know:\n" +
		"1. What plant you're treating\n" +
		"2. What disease or symptoms you're seeing\n" +
		"3. How severe the infection is\n\n" +
		"Could you provide more details? You can also upload an image for accurate diagnosis."

	return Reply{
		Text: text,
		Suggestions: []string{
			"Upload plant image for diagnosis",
			"Ask about fungicide applications",
			"Learn about organic treatments",
			"Get prevention strategies",
		},
	}
}

func (b *Bot) handleGrowingConditions(ents entities) Reply {
	if ents.Plant != nil {
		p := ents.Plant
		var sb strings.Builder
		sb.WriteString("Optimal growing conditions for " + p.Name + ":\n\n")
		sb.WriteString("Soil requirements:\n")
		sb.WriteString("• pH: " + p.SoilConditions.PHRange + "\n")
		sb.WriteString("• Drainage: " + p.SoilConditions.Drainage + "\n")
		sb.WriteString("• Depth: " + p.SoilConditions.Depth + "\n\n")
		sb.WriteString("Climate requirements:\n")
		sb.WriteString("• Temperature: " + p.WeatherConditions.Temperature + "\n")
		sb.WriteString("• Sunlight: " + p.WeatherConditions.Sunlight + "\n")
		sb.WriteString("• Rainfall: " + p.WeatherConditions.Rainfall + "\n")
		if len(p.SuitableRegions) > 0 {
			regions := p.SuitableRegions
			if len(regions) > 3 {
				regions = regions[:3]
			}
			sb.WriteString("\nBest growing regions: " + strings.Join(regions, ", "))
		}

		return Reply{
			Text: sb.String(),
			Suggestions: []string{
				"Soil preparation for " + p.Name,
				"Watering schedule for " + p.Name,
				"Fertilizing " + p.Name,
				"Common problems with " + p.Name,
			},
		}
	}

	text := "Growing conditions vary significantly by plant type. Key factors include:\n" +
		"• Soil: pH, drainage, organic content\n" +
		"• Climate: temperature range, humidity, rainfall\n" +
		"• Light: full sun, partial shade, or shade\n" +
		"• Space: plant spacing and root depth requirements\n\n" +
		"Which plant are you interested in growing?"

	return Reply{
		Text: text,
		Suggestions: []string{
			"Ask about apple growing conditions",
			"Ask about tomato growing conditions",
			"Ask about corn growing conditions",
			"Learn about soil preparation",
		},
	}
}

func (b *Bot) handlePestManagement(ents entities) Reply {
	var sb strings.Builder
	sb.WriteString("Effective pest management uses Integrated Pest Management (IPM) principles:\n\n")
	sb.WriteString("1. Prevention:\n")
	sb.WriteString("• Maintain healthy soil and plants\n")
	sb.WriteString("• Choose resistant varieties\n")
	sb.WriteString("• Practice crop rotation\n")
	sb.WriteString("• Remove plant debris\n\n")
	sb.WriteString("2. Monitoring:\n")
	sb.WriteString("• Regular inspection of plants\n")
	sb.WriteString("• Identify pests early\n")
	sb.WriteString("• Monitor beneficial insects\n\n")
	sb.WriteString("3. Control methods:\n")
	sb.WriteString("• Biological: beneficial insects, natural predators\n")
	sb.WriteString("• Physical: row covers, traps, barriers\n")
	sb.WriteString("• Chemical: targeted, least-toxic options first\n")
	if ents.Plant != nil {
		sb.WriteString("\nFor " + ents.Plant.Name + " specifically, common pests include aphids, spider mites, and various caterpillars.")
	}

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"Identify beneficial insects",
			"Organic pest control methods",
			"When to use pesticides",
			"Natural pest deterrents",
		},
	}
}

func (b *Bot) handleSoilManagement(ents entities) Reply {
	var sb strings.Builder
	sb.WriteString("Healthy soil is the foundation of successful growing! Here are key soil management practices:\n\n")
	sb.WriteString("Soil testing:\n")
	sb.WriteString("• Test pH levels (most plants prefer 6.0-7.0)\n")
	sb.WriteString("• Check nutrient levels (N-P-K)\n")
	sb.WriteString("• Assess organic matter content\n")
	sb.WriteString("• Test every 2-3 years\n\n")
	sb.WriteString("Soil improvement:\n")
	sb.WriteString("• Add compost regularly (2-4 inches annually)\n")
	sb.WriteString("• Use organic mulch to retain moisture\n")
	sb.WriteString("• Avoid compaction, never work wet soil\n")
	sb.WriteString("• Consider cover crops in the off-season\n\n")
	sb.WriteString("Drainage:\n")
	sb.WriteString("• Ensure proper drainage to prevent root rot\n")
	sb.WriteString("• Add organic matter to improve structure\n")
	sb.WriteString("• Consider raised beds for problem areas\n")
	if ents.Plant != nil {
		p := ents.Plant
		sb.WriteString("\nFor " + p.Name + " specifically:\n")
		sb.WriteString("• pH: " + p.SoilConditions.PHRange + "\n")
		sb.WriteString("• " + p.SoilConditions.Drainage + "\n")
	}

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"How to test soil pH",
			"Making compost at home",
			"Improving clay soil",
			"Improving sandy soil",
		},
	}
}

func (b *Bot) handleWateringIrrigation(ents entities) Reply {
	var sb strings.Builder
	sb.WriteString("Proper watering is crucial for plant health. Here are key principles:\n\n")
	sb.WriteString("General guidelines:\n")
	sb.WriteString("• Water deeply but less frequently\n")
	sb.WriteString("• Water early morning (6-10 AM) for best absorption\n")
	sb.WriteString("• Check soil moisture 2-3 inches deep\n")
	sb.WriteString("• Adjust frequency based on weather and season\n\n")
	sb.WriteString("Watering methods:\n")
	sb.WriteString("• Drip irrigation: most efficient, reduces disease\n")
	sb.WriteString("• Soaker hoses: good for garden beds\n")
	sb.WriteString("• Hand watering: best for containers and new plants\n")
	sb.WriteString("• Sprinklers: avoid if possible, can promote disease\n\n")
	sb.WriteString("Signs of problems:\n")
	sb.WriteString("• Overwatering: yellow leaves, root rot, fungal issues\n")
	sb.WriteString("• Underwatering: wilting, dry or crispy leaves, stunted growth\n")
	if ents.Plant != nil {
		sb.WriteString("\nFor " + ents.Plant.Name + ": most crops need 1-2 inches of water per week, including rainfall.")
	}

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"Setting up drip irrigation",
			"Watering container plants",
			"Watering during drought",
			"Signs of overwatering",
		},
	}
}

func (b *Bot) handleFertilization(ents entities) Reply {
	var sb strings.Builder
	sb.WriteString("Plant nutrition is essential for healthy growth and disease resistance:\n\n")
	sb.WriteString("Primary nutrients (N-P-K):\n")
	sb.WriteString("• Nitrogen (N): promotes leaf growth and green color\n")
	sb.WriteString("• Phosphorus (P): essential for root development and flowering\n")
	sb.WriteString("• Potassium (K): improves disease resistance and fruit quality\n\n")
	sb.WriteString("Fertilization schedule:\n")
	sb.WriteString("• Spring: apply balanced fertilizer as growth begins\n")
	sb.WriteString("• Growing season: side-dress with compost or organic fertilizer\n")
	sb.WriteString("• Fall: reduce nitrogen, focus on phosphorus and potassium\n\n")
	sb.WriteString("Organic options:\n")
	sb.WriteString("• Compost: slow-release, improves soil structure\n")
	sb.WriteString("• Fish emulsion: quick nitrogen boost\n")
	sb.WriteString("• Bone meal: phosphorus for flowering and fruiting\n")
	sb.WriteString("• Kelp meal: potassium and trace minerals\n")
	if ents.Plant != nil {
		sb.WriteString("\nFor " + ents.Plant.Name + ": " + ents.Plant.HealthyInfo.Nutrition)
	}

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"Organic fertilizer recipes",
			"When to fertilize seedlings",
			"Signs of nutrient deficiency",
			"Compost tea benefits",
		},
	}
}

func (b *Bot) handleHarvesting(ents entities) Reply {
	if ents.Plant != nil {
		p := ents.Plant
		var sb strings.Builder
		sb.WriteString("Harvesting " + p.Name + ":\n\n")
		sb.WriteString("When to harvest: " + p.HealthyInfo.Harvesting + "\n\n")
		sb.WriteString("General harvesting tips:\n")
		sb.WriteString("• Harvest in the morning when plants are well-hydrated\n")
		sb.WriteString("• Use clean, sharp tools to avoid damaging plants\n")
		sb.WriteString("• Handle produce gently to prevent bruising\n")
		sb.WriteString("• Regular harvesting often encourages more production\n")

		return Reply{
			Text: sb.String(),
			Suggestions: []string{
				"Storage tips for " + p.Name,
				"Processing " + p.Name + " after harvest",
				"Extending harvest season",
			},
		}
	}

	text := "Harvest timing varies by crop, but here are general principles:\n\n" +
		"• Fruits: harvest when fully colored and slightly soft\n" +
		"• Leafy greens: pick outer leaves, let the center continue growing\n" +
		"• Root vegetables: check size by gently digging around the base\n" +
		"• Seeds and grains: harvest when dry and fully mature\n\n" +
		"Which specific crop are you looking to harvest?"

	return Reply{
		Text: text,
		Suggestions: []string{
			"Harvesting tomatoes",
			"Harvesting apples",
			"Harvesting corn",
			"Post-harvest storage",
		},
	}
}

var seasonalTasks = map[string][]string{
	"spring": {
		"Start seeds indoors or plant outdoors after last frost",
		"Apply compost and organic fertilizers",
		"Prune damaged or dead branches",
		"Set up irrigation systems",
		"Begin pest monitoring programs",
	},
	"summer": {
		"Maintain consistent watering schedule",
		"Harvest crops as they ripen",
		"Monitor for pests and diseases",
		"Provide shade for heat-sensitive plants",
		"Side-dress plants with compost",
	},
	"fall": {
		"Harvest remaining crops before frost",
		"Plant cover crops in empty beds",
		"Collect and compost healthy plant debris",
		"Prepare tender plants for winter",
		"Plan next year's garden layout",
	},
	"winter": {
		"Plan next season's planting schedule",
		"Order seeds and plan garden changes",
		"Maintain tools and equipment",
		"Study new growing techniques",
		"Protect plants from frost and cold",
	},
}

func (b *Bot) handleSeasonalCare(ents entities) Reply {
	season := ents.Season
	if season == "" {
		season = currentSeason(time.Now())
	}

	var sb strings.Builder
	sb.WriteString(strings.ToUpper(season[:1]) + season[1:] + " care tasks:\n\n")
	for i, task := range seasonalTasks[season] {
		sb.WriteString(strconv.Itoa(i+1) + ". " + task + "\n")
	}
	if ents.Plant != nil {
		sb.WriteString("\nFor " + ents.Plant.Name + ", keep a close eye on watering and disease pressure as the season changes.")
	}

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"Next season preparation",
			"Weather protection tips",
			"Seasonal plant problems",
		},
	}
}

func (b *Bot) handleOrganicFarming() Reply {
	var sb strings.Builder
	sb.WriteString("Organic farming focuses on sustainable, natural methods:\n\n")
	sb.WriteString("Core principles:\n")
	sb.WriteString("• Build healthy soil through composting and organic matter\n")
	sb.WriteString("• Use natural pest and disease management\n")
	sb.WriteString("• Promote biodiversity and beneficial insects\n")
	sb.WriteString("• Avoid synthetic chemicals and GMOs\n\n")
	sb.WriteString("Soil building:\n")
	sb.WriteString("• Add 2-4 inches of compost annually\n")
	sb.WriteString("• Use organic mulches to suppress weeds\n")
	sb.WriteString("• Practice crop rotation to prevent soil depletion\n")
	sb.WriteString("• Plant cover crops to add nitrogen and organic matter\n\n")
	sb.WriteString("Natural pest control:\n")
	sb.WriteString("• Encourage beneficial insects with diverse plantings\n")
	sb.WriteString("• Use companion planting strategies\n")
	sb.WriteString("• Apply organic-approved treatments like neem oil\n")
	sb.WriteString("• Practice good garden sanitation\n")

	return Reply{
		Text: sb.String(),
		Suggestions: []string{
			"Making compost at home",
			"Companion planting guide",
			"Natural pest deterrents",
			"Organic certification process",
		},
	}
}

// knowledgeTopics answers a couple of common questions the intent
// patterns miss.
var knowledgeTopics = []struct {
	keywords    []string
	response    string
	suggestions []string
}{
	{
		keywords: []string{"companion", "together", "plant combinations"},
		response: "Companion planting involves growing complementary plants together. Great combinations include tomatoes with basil, corn with beans and squash (Three Sisters), and marigolds with most vegetables for pest control.",
		suggestions: []string{
			"Three Sisters planting method",
			"Pest-deterrent companion plants",
			"Beneficial plant combinations",
		},
	},
	{
		keywords: []string{"crop rotation", "rotating crops", "plant succession"},
		response: "Crop rotation prevents soil depletion and breaks pest and disease cycles. Rotate plant families: follow heavy feeders (tomatoes) with light feeders (herbs), then soil builders (legumes), then root crops.",
		suggestions: []string{
			"4-year rotation plan",
			"Benefits of crop rotation",
			"Planning garden layout",
		},
	},
}

func (b *Bot) handleGeneral(message string) Reply {
	for _, topic := range knowledgeTopics {
		for _, keyword := range topic.keywords {
			if strings.Contains(message, keyword) {
				return Reply{Text: topic.response, Suggestions: topic.suggestions}
			}
		}
	}

	text := "I'm here to help with agricultural and farming questions! I can assist you with:\n\n" +
		"• Plant disease identification: upload images or describe symptoms\n" +
		"• Growing advice: optimal conditions, planting, care instructions\n" +
		"• Problem diagnosis: pest issues, nutrient deficiencies, diseases\n" +
		"• Seasonal care: what to do throughout the growing season\n" +
		"• Organic methods: natural and sustainable farming practices\n\n" +
		"What specific farming topic would you like to explore?"

	return Reply{
		Text: text,
		Suggestions: []string{
			"Upload a plant image for analysis",
			"Ask about a specific plant",
			"Get soil management tips",
			"Learn about organic farming",
		},
	}
}

var suggestedQuestions = map[string][]string{
	"general": {
		"How do I identify plant diseases?",
		"What are the signs of overwatering?",
		"When should I fertilize my plants?",
		"How do I improve my soil quality?",
		"What is integrated pest management?",
	},
	"diseases": {
		"What causes yellow leaves on tomatoes?",
		"How do I treat fungal infections?",
		"What are the symptoms of blight?",
		"How can I prevent plant diseases?",
		"When should I use fungicides?",
	},
	"growing": {
		"What pH should my soil be?",
		"How much water do vegetables need?",
		"When is the best time to plant?",
		"How do I prepare soil for planting?",
		"What plants grow well together?",
	},
	"organic": {
		"How do I make compost?",
		"What are natural pest control methods?",
		"How do I attract beneficial insects?",
		"What organic fertilizers work best?",
		"How do I transition to organic farming?",
	},
}

// SuggestedQuestions returns starter questions for a category,
// falling back to the general set for unknown categories.
func SuggestedQuestions(category string) []string {
	if qs, ok := suggestedQuestions[category]; ok {
		return qs
	}
	return suggestedQuestions["general"]
}

func currentSeason(now time.Time) string {
	switch {
	case now.Month() >= 3 && now.Month() <= 5:
		return "spring"
	case now.Month() >= 6 && now.Month() <= 8:
		return "summer"
	case now.Month() >= 9 && now.Month() <= 11:
		return "fall"
	default:
		return "winter"
	}
}
