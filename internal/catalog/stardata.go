package catalog

// navigationStars are the 37 onboard navigation stars, in onboard ID order.
// Coordinates are J2000.
var navigationStars = []Star{
	{1, "Alpheratz", 2.0969, 29.0904, 2.06},
	{2, "Diphda", 10.8974, -17.9866, 2.02},
	{3, "Navi", 14.1772, 60.7167, 2.47},
	{4, "Achernar", 24.4285, -57.2368, 0.46},
	{5, "Polaris", 37.9546, 89.2641, 2.02},
	{6, "Acamar", 44.5653, -40.3047, 3.24},
	{7, "Menkar", 45.5699, 4.0897, 2.54},
	{8, "Mirfak", 51.0807, 49.8612, 1.79},
	{9, "Aldebaran", 68.9802, 16.5093, 0.85},
	{10, "Rigel", 78.6345, -8.2016, 0.13},
	{11, "Capella", 79.1723, 45.9980, 0.08},
	{12, "Canopus", 95.9880, -52.6957, -0.74},
	{13, "Sirius", 101.2872, -16.7161, -1.46},
	{14, "Procyon", 114.8255, 5.2250, 0.34},
	{15, "Regor", 122.3831, -47.3366, 1.83},
	{16, "Dnoces", 134.8019, 48.0418, 3.14},
	{17, "Alphard", 141.8968, -8.6586, 2.00},
	{18, "Regulus", 152.0930, 11.9672, 1.35},
	{19, "Denebola", 177.2649, 14.5721, 2.13},
	{20, "Gienah", 183.9515, -17.5419, 2.59},
	{21, "Acrux", 186.6496, -63.0991, 0.76},
	{22, "Spica", 201.2983, -11.1613, 0.97},
	{23, "Alkaid", 206.8852, 49.3133, 1.86},
	{24, "Menkent", 211.6706, -36.3700, 2.06},
	{25, "Arcturus", 213.9153, 19.1824, -0.05},
	{26, "Alphecca", 233.6720, 26.7147, 2.23},
	{27, "Antares", 247.3519, -26.4320, 0.96},
	{28, "Atria", 252.1662, -69.0277, 1.92},
	{29, "Rasalhague", 263.7336, 12.5600, 2.08},
	{30, "Vega", 279.2347, 38.7837, 0.03},
	{31, "Nunki", 283.8164, -26.2967, 2.02},
	{32, "Altair", 297.6958, 8.8683, 0.76},
	{33, "Dabih", 305.2528, -14.7814, 3.08},
	{34, "Peacock", 306.4119, -56.7351, 1.94},
	{35, "Deneb", 310.3580, 45.2803, 1.25},
	{36, "Enif", 326.0465, 9.8750, 2.39},
	{37, "Fomalhaut", 344.4127, -29.6222, 1.16},
}

// brightStars extend the catalog beyond the navigation set. Data sourced
// from the Yale Bright Star Catalog and IAU star names.
var brightStars = []Star{
	{38, "Betelgeuse", 88.793, 7.407, 0.50},
	{39, "Hadar", 210.956, -60.373, 0.61},
	{40, "Pollux", 116.329, 28.026, 1.14},
	{41, "Mimosa", 191.930, -59.689, 1.25},
	{42, "Adhara", 104.656, -28.972, 1.50},
	{43, "Castor", 113.650, 31.889, 1.58},
	{44, "Gacrux", 187.791, -57.113, 1.63},
	{45, "Shaula", 263.402, -37.104, 1.63},
	{46, "Bellatrix", 81.283, 6.350, 1.64},
	{47, "Elnath", 81.573, 28.608, 1.65},
	{48, "Miaplacidus", 138.300, -69.717, 1.68},
	{49, "Alnilam", 84.053, -1.202, 1.69},
	{50, "Alnair", 332.058, -46.961, 1.74},
	{51, "Alnitak", 85.190, -1.943, 1.77},
	{52, "Alioth", 193.507, 55.960, 1.77},
	{53, "Dubhe", 165.932, 61.751, 1.79},
	{54, "Wezen", 107.098, -26.393, 1.84},
	{55, "Sargas", 264.330, -42.998, 1.87},
	{56, "Kaus Australis", 276.043, -34.384, 1.85},
	{57, "Avior", 125.629, -59.509, 1.86},
	{58, "Menkalinan", 89.882, 44.948, 1.90},
	{59, "Alhena", 99.428, 16.399, 1.93},
	{60, "Alsephina", 131.176, -54.709, 1.96},
	{61, "Mirzam", 95.675, -17.956, 1.98},
	{62, "Hamal", 31.793, 23.463, 2.00},
	{63, "Algieba", 146.463, 19.842, 2.08},
	{64, "Mizar", 200.981, 54.925, 2.04},
	{65, "Saiph", 86.939, -9.670, 2.09},
	{66, "Mirach", 17.433, 35.621, 2.05},
	{67, "Kochab", 222.676, 74.156, 2.08},
	{68, "Algol", 47.042, 40.957, 2.12},
	{69, "Muhlifain", 190.379, -48.960, 2.17},
	{70, "Naos", 120.896, -40.003, 2.25},
	{71, "Aspidiske", 139.273, -59.275, 2.25},
	{72, "Suhail", 136.999, -43.433, 2.21},
	{73, "Mintaka", 83.002, -0.299, 2.23},
	{74, "Sadr", 305.557, 40.257, 2.23},
	{75, "Eltanin", 269.152, 51.489, 2.23},
	{76, "Schedar", 10.127, 56.537, 2.23},
	{77, "Caph", 2.295, 59.150, 2.27},
	{78, "Dschubba", 240.083, -22.622, 2.32},
	{79, "Larawag", 254.655, -34.293, 2.29},
	{80, "Merak", 165.460, 56.382, 2.37},
	{81, "Izar", 221.247, 27.074, 2.37},
	{82, "Ankaa", 6.571, -42.306, 2.38},
	{83, "Phecda", 178.458, 53.695, 2.44},
	{84, "Sabik", 257.595, -15.725, 2.43},
	{85, "Scheat", 345.944, 28.083, 2.42},
	{86, "Alderamin", 319.645, 62.586, 2.51},
	{87, "Aludra", 111.024, -29.303, 2.45},
	{88, "Markeb", 140.528, -55.011, 2.47},
	{89, "Girtab", 265.622, -39.030, 2.41},
	{90, "Markab", 346.190, 15.205, 2.49},
	{91, "Aljanah", 311.553, 33.970, 2.48},
	{92, "Acrab", 241.359, -19.805, 2.62},
	{93, "Aldhanab", 319.966, -16.127, 3.00},
	{94, "Zubeneschamali", 229.252, -9.383, 2.61},
	{95, "Unukalhai", 236.067, 6.426, 2.65},
	{96, "Sheratan", 28.660, 20.808, 2.64},
	{97, "Phact", 84.912, -34.074, 2.64},
	{98, "Zosma", 168.527, 20.524, 2.56},
	{99, "Arneb", 83.183, -17.822, 2.58},
	{100, "Gomeisa", 111.788, 8.289, 2.90},
	{101, "Thuban", 211.097, 64.376, 3.65},
	{102, "Rastaban", 262.608, 52.301, 2.79},
	{103, "Cor Caroli", 194.007, 38.318, 2.81},
	{104, "Vindemiatrix", 195.544, 10.959, 2.83},
	{105, "Algorab", 187.466, -16.515, 2.95},
	{106, "Zubenelgenubi", 222.720, -16.042, 2.75},
	{107, "Porrima", 190.415, -1.449, 2.74},
	{108, "Albireo", 292.680, 27.960, 3.18},
	{109, "Sadalmelik", 331.446, -0.320, 2.96},
	{110, "Sadalsuud", 322.890, -5.571, 2.91},
	{111, "Yed Prior", 243.586, -3.694, 2.75},
	{112, "Alcyone", 56.871, 24.105, 2.87},
	{113, "Tarazed", 296.565, 10.613, 2.72},
	{114, "Alshain", 298.828, 6.407, 3.71},
	{115, "Nihal", 82.061, -20.759, 2.84},
	{116, "Wazn", 90.399, -35.768, 3.85},
	{117, "Muscida", 127.566, 60.718, 3.35},
	{118, "Tania Australis", 155.582, 41.499, 3.05},
	{119, "Alula Australis", 169.545, 31.529, 3.78},
	{120, "Megrez", 183.857, 57.033, 3.31},
	{121, "Alcor", 201.306, 54.988, 3.99},
	{122, "Syrma", 214.004, -6.001, 4.08},
	{123, "Khambalia", 218.877, -13.371, 4.66},
	{124, "Kraz", 188.597, -23.397, 2.65},
	{125, "Alkes", 164.944, -18.299, 4.08},
	{126, "Minkar", 182.531, -22.620, 3.02},
	{127, "Sceptrum", 62.966, -8.898, 4.45},
	{128, "Cursa", 76.963, -5.086, 2.79},
	{129, "Hassaleh", 75.492, 33.166, 2.69},
	{130, "Hoedus I", 75.620, 41.234, 3.04},
	{131, "Hoedus II", 75.248, 41.076, 3.17},
	{132, "Saclateni", 79.402, 40.010, 3.69},
	{133, "Furud", 95.078, -30.063, 3.96},
	{134, "Muliphein", 105.940, -15.633, 4.11},
	{135, "Tejat", 95.740, 22.513, 2.88},
	{136, "Mebsuta", 100.983, 25.131, 3.06},
	{137, "Propus", 93.719, 22.506, 3.28},
	{138, "Wasat", 110.031, 21.982, 3.53},
	{139, "Kappa Gem", 116.112, 24.398, 3.57},
	{140, "Asellus Australis", 131.171, 18.154, 3.94},
	{141, "Asellus Borealis", 130.821, 21.469, 4.66},
	{142, "Acubens", 134.622, 11.858, 4.25},
	{143, "Alterf", 139.711, 22.968, 4.31},
	{144, "Rasalas", 146.463, 26.007, 3.88},
	{145, "Adhafera", 154.173, 23.417, 3.43},
	{146, "Subra", 148.191, 9.893, 3.52},
	{147, "Chertan", 168.560, 15.430, 3.33},
	{148, "Zavijava", 177.674, 1.765, 3.61},
	{149, "Tyl", 288.439, 67.661, 4.01},
	{150, "Edasich", 231.232, 58.966, 3.29},
	{151, "Giausar", 175.942, 69.331, 3.85},
	{152, "Grumium", 268.382, 56.873, 3.75},
	{153, "Alsafi", 282.520, 52.301, 4.67},
	{154, "Alrakis", 245.998, 61.514, 4.67},
	{155, "Dziban", 270.162, 72.149, 4.54},
	{156, "Pherkad", 230.182, 71.834, 3.00},
	{157, "Yildun", 263.054, 86.586, 4.36},
	{158, "Epsilon Dra", 297.043, 70.268, 3.83},
	{159, "Chi Dra", 274.966, 72.733, 3.57},
	{160, "Gianfar", 284.073, 75.388, 4.13},
	{161, "Aldhibah", 256.343, 65.715, 3.17},
	{162, "Nodus Secundus", 246.998, 61.514, 3.07},
	{163, "Tania Borealis", 154.274, 42.914, 3.45},
	{164, "Alula Borealis", 169.620, 33.094, 3.49},
	{165, "Chara", 188.436, 41.357, 4.26},
	{166, "Asterion", 194.289, 38.318, 4.25},
	{167, "Diadem", 197.497, 17.529, 4.32},
	{168, "Zaniah", 184.976, -0.667, 3.89},
	{169, "Auva", 192.855, 3.397, 3.38},
	{170, "Heze", 203.673, -0.596, 3.37},
}
