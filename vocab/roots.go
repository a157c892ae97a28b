package vocab

// spanishRoots are the topic roots used for Spanish-language feeds.
var spanishRoots = []string{
	"Elección", "Política", "Reforma", "Proyecto", "Ley", "Congreso", "Senado", "Presidente",
	"Gobierno", "Primer", "Ministro", "Gabinete", "Oposición", "Coalición", "Democracia",
	"Constitución", "Parlamento", "Legislación", "Diplomático", "Tratado", "Sanción", "Embargo",
	"Resolución", "Comité", "Campaña", "Cabildeo", "Defensa", "Legislar", "Enmienda", "Presupuesto",
	"Déficit", "Superávit", "Economía", "Inflación", "Recesión", "Mercado", "Comercio", "Acciones",
	"Índice", "Moneda", "Inversión", "Fiscal", "Monetario", "Arancel", "Exportación", "Importación",
	"PIB", "Empleo", "Desempleo", "Pobreza", "Salud", "Vacuna", "Pandemia", "Brote", "Cuarentena",
	"Confinamiento", "Virus", "Infección", "Inmunidad", "Atención", "Hospital", "Clínica",
	"Tratamiento", "Diagnóstico", "Investigación", "Estudio", "Datos", "Estadísticas", "Encuesta",
	"Tecnología", "Innovación", "Software", "Hardware", "Red", "Internet", "Ciberseguridad",
	"Hackeo", "Brecha", "Cifrado", "IA", "Máquina", "Aprendizaje", "Robótica", "Automatización",
	"Cadena", "Criptomoneda", "Bitcoin", "Ethereum", "Social", "Medios", "Plataforma", "Aplicación",
	"Teléfono", "Móvil", "Satélite", "Espacio", "Exploración", "Clima", "Medio", "Emisión", "Carbono",
	"Verde", "Energía", "Renovable", "Solar", "Eólica", "Combustible", "Fósil", "Conservación",
	"Vida", "Biodiversidad", "Océano", "Plástico", "Contaminación", "Residuos", "Reciclar", "Guerra",
	"Conflicto", "Militar", "Seguridad", "Terrorismo", "Ataque", "Explosión", "Misil", "Nuclear",
	"Arma", "Dron", "Espía", "Inteligencia", "Refugiado", "Asilo", "Migración", "Frontera", "Visa",
	"Pasaporte", "Ciudadano", "Inmigración", "Deportación", "Humano", "Derechos", "Igualdad",
	"Justicia", "Corte", "Juez", "Juicio", "Jurado", "Veredicto", "Sentencia", "Apelación", "Crimen",
	"Robo", "Asesinato", "Fraude", "Soborno", "Corrupción", "Arresto", "Cargo",
	"Fianza", "Rescate", "Quiebra", "Ejecución", "Deuda", "Préstamo", "Interés", "Crédito", "Hipoteca",
	"Seguro", "Prima", "Reclamación", "Asegurado", "Litigio", "Patente", "Derecho", "Marca",
	"Infracción", "Acuerdo", "Fusión", "Adquisición", "Accionista", "Dividendo", "Capital", "Bono",
	"Rendimiento", "Cartera", "Activo", "Pasivo", "Auditoría", "Regulación", "Cumplimiento",
	"Estándar", "Procedimiento", "Protocolo", "Orientación", "Asesoramiento", "Consultoría",
	"Análisis", "Pronóstico", "Tendencia",
}

// englishRoots cover the same topics for English-language feeds.
var englishRoots = []string{
	"Election", "Politics", "Reform", "Bill", "Law", "Congress", "Senate", "President",
	"Government", "Prime", "Minister", "Cabinet", "Opposition", "Coalition", "Democracy",
	"Constitution", "Parliament", "Legislation", "Diplomat", "Treaty", "Sanction",
	"Committee", "Campaign", "Lobbying", "Defense", "Amendment", "Budget",
	"Deficit", "Surplus", "Economy", "Inflation", "Recession", "Market", "Trade", "Stocks",
	"Currency", "Investment", "Monetary", "Tariff", "Export", "Import",
	"GDP", "Employment", "Unemployment", "Poverty", "Health", "Vaccine", "Pandemic", "Outbreak",
	"Quarantine", "Lockdown", "Infection", "Immunity", "Treatment", "Diagnosis", "Research",
	"Study", "Statistics", "Survey", "Technology", "Innovation", "Network", "Cybersecurity",
	"Hacking", "Breach", "Encryption", "AI", "Machine", "Learning", "Robotics", "Automation",
	"Blockchain", "Cryptocurrency", "Platform", "Application", "Satellite", "Space", "Climate",
	"Emission", "Carbon", "Energy", "Renewable", "Wind", "Fuel", "Fossil", "Conservation",
	"Biodiversity", "Ocean", "Plastic", "Pollution", "Waste", "Recycling", "War",
	"Conflict", "Military", "Security", "Terrorism", "Attack", "Explosion", "Missile",
	"Weapon", "Drone", "Spy", "Intelligence", "Refugee", "Asylum", "Migration", "Border",
	"Passport", "Citizen", "Immigration", "Deportation", "Rights", "Equality",
	"Justice", "Court", "Judge", "Trial", "Jury", "Verdict", "Ruling", "Appeal", "Crime",
	"Theft", "Murder", "Fraud", "Bribery", "Corruption", "Arrest", "Charge",
	"Bail", "Bailout", "Bankruptcy", "Debt", "Loan", "Interest", "Credit", "Mortgage",
	"Insurance", "Premium", "Claim", "Litigation", "Patent", "Trademark",
	"Infringement", "Agreement", "Merger", "Acquisition", "Shareholder", "Dividend", "Bond",
	"Portfolio", "Asset", "Liability", "Audit", "Regulation", "Compliance",
	"Standard", "Procedure", "Protocol", "Guidance", "Consulting",
	"Analysis", "Forecast", "Trend",
}
